package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretacare/aretacare/app/core"
	v1 "github.com/aretacare/aretacare/app/logic/v1"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "care journal service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	serve(app)

	return nil
}

type TokenOptions struct {
	ConfigPath string
	UserID     string
	Days       int
}

func (o *TokenOptions) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
	flagSet.StringVarP(&o.UserID, "user", "u", "", "user id to issue the token for")
	flagSet.IntVarP(&o.Days, "days", "d", 365, "token lifetime in days")
}

// NewTokenCommand 服务部署后给用户签发首枚访问令牌
func NewTokenCommand() *cobra.Command {
	opts := &TokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "issue an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunToken(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func RunToken(opts *TokenOptions) error {
	if opts.UserID == "" {
		return fmt.Errorf("missing --user")
	}

	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))

	ctx := context.WithValue(context.Background(), v1.TOKEN_CONTEXT_KEY, opts.UserID)
	token, err := v1.NewAuthLogic(ctx, app).GenAccessToken("issued by cli", time.Now().AddDate(0, 0, opts.Days).Unix())
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
