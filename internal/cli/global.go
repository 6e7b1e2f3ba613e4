package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/washworks/jobboard/internal/client"
)

type GlobalOptions struct {
	ServerUrl string
	Username  string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl: "http://localhost:3443",
		Username:  "",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.StringVar(&o.Username, "user", o.Username, "Staff name recorded on mutations")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

func (o *GlobalOptions) Client() *client.JobBoard {
	return client.New(o.ServerUrl, client.WithUsername(o.Username))
}
