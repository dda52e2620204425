package types

type MessageUserRole int8

const (
	USER_ROLE_UNKNOWN   MessageUserRole = 0
	USER_ROLE_USER      MessageUserRole = 1
	USER_ROLE_ASSISTANT MessageUserRole = 2
	USER_ROLE_SYSTEM    MessageUserRole = 3
)

func (r MessageUserRole) String() string {
	switch r {
	case USER_ROLE_ASSISTANT:
		return "assistant"
	case USER_ROLE_USER:
		return "user"
	case USER_ROLE_SYSTEM:
		return "system"
	default:
		return "unknown"
	}
}

// MessageContext 组装发送给模型的一轮对话消息
type MessageContext struct {
	Role    MessageUserRole `json:"role"`
	Content string          `json:"content"`
}
