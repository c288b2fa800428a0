package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"StockRoom/internal/client"
)

const keyAPIURL = "api_url"

type app struct {
	v   *viper.Viper
	out io.Writer
}

// NewRootCmd builds the inventoryctl command tree. The API base URL comes
// from --api-url, then INVENTORY_API_URL, then the local default.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Inventory Management CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().String("api-url", client.DefaultBaseURL, "inventory service base URL")
	_ = a.v.BindPFlag(keyAPIURL, root.PersistentFlags().Lookup("api-url"))
	_ = a.v.BindEnv(keyAPIURL, "INVENTORY_API_URL")
	a.v.SetDefault(keyAPIURL, client.DefaultBaseURL)

	root.AddCommand(
		a.listCmd(),
		a.getCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.fetchCmd(),
	)
	return root
}

func (a *app) client() *client.Client {
	return client.New(a.v.GetString(keyAPIURL))
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}
