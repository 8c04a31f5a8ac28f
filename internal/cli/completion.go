package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/catalog"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for foodstack.

Besides commands and flags, completions offer the built-in dishes for --dish
and the ingredient ids of the active catalog (from --dish, --catalog, or the
config file) for selections and --hover.

  $ source <(foodstack completion bash)
  $ foodstack completion zsh > "${fpath[1]}/_foodstack"
  $ foodstack completion fish | source
  PS> foodstack completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions wires dish and ingredient completion into root. It
// must run after every subcommand is added.
func (c *CLI) registerCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("dish", completeDishes)
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "layout", "nutrition", "render", "build":
			cmd.ValidArgsFunction = c.completeIngredients
			if cmd.Flags().Lookup("hover") != nil {
				_ = cmd.RegisterFlagCompletionFunc("hover", c.completeIngredients)
			}
		}
	}
}

func completeDishes(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, d := range catalog.Dishes() {
		if strings.HasPrefix(d, toComplete) {
			out = append(out, d)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeIngredients offers the ids of the active catalog. In a
// comma-separated word only the last element is completed.
func (c *CLI) completeIngredients(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	opts, err := c.options(nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cat, err := c.newRunner().LoadCatalog(ctx, opts)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	head, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head, last = toComplete[:i+1], toComplete[i+1:]
	}
	var out []string
	for _, ing := range cat.Ingredients() {
		if strings.HasPrefix(string(ing.ID), last) {
			out = append(out, head+string(ing.ID)+"\t"+ing.DisplayName())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
