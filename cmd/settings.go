package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/autoskip-cli/autoskip/color"
	"github.com/autoskip-cli/autoskip/constant"
	"github.com/autoskip-cli/autoskip/icon"
	"github.com/autoskip-cli/autoskip/internal/ui"
	"github.com/autoskip-cli/autoskip/settings"
	"github.com/autoskip-cli/autoskip/style"
	"github.com/autoskip-cli/autoskip/util"
	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func settingNames() []string {
	return lo.Map(settings.Names(), func(n settings.Name, _ int) string { return string(n) })
}

func completionSettingNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return settingNames(), cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
}

// resolveSettingName accepts an exact name or an unambiguous case-insensitive fuzzy match.
func resolveSettingName(name string) (string, error) {
	if settings.Known(name) {
		return name, nil
	}

	if matches := fuzzy.FindFold(name, settingNames()); len(matches) == 1 {
		return matches[0], nil
	}

	return "", errUnknown("setting", name, settingNames())
}

func alert(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), msg)
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Toggle " + constant.PluginName + " settings",
	Long:  "Open an interactive form with the " + constant.PluginName + " toggles. Every change is saved immediately.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openSettings()
		handleErr(store.Present(&ui.Form{}, alert, nil))
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsShowCmd.Flags().BoolP("json", "j", false, "Print the settings as JSON")
	settingsShowCmd.SetOut(os.Stdout)
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		store := openSettings()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(store.Snapshot()))
			return
		}

		for _, field := range store.Fields() {
			value := style.Fg(color.Red)("off")
			if field.Checked {
				value = style.Fg(color.Green)("on")
			}
			cmd.Printf("%s %s %s\n",
				style.New().Bold(true).Foreground(color.Purple).Render(string(field.Name)),
				style.Faint(field.Label),
				value,
			)
		}
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

var settingsSetCmd = &cobra.Command{
	Use:               "set <name> <true|false>",
	Short:             "Change a single setting",
	Example:           "  autoskip settings set skipEndings false",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionSettingNames,
	Run: func(cmd *cobra.Command, args []string) {
		name, err := resolveSettingName(args[0])
		handleErr(err)

		value, err := strconv.ParseBool(args[1])
		if err != nil {
			handleErr(fmt.Errorf("invalid boolean value: %q", args[1]))
		}

		handleErr(openSettings().Toggle(settings.Name(name), value))
		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(name),
			style.Fg(color.Yellow)(strconv.FormatBool(value)),
		)
	},
}

func init() {
	settingsCmd.AddCommand(settingsResetCmd)
	settingsResetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore every setting to its default",
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			if !util.Interactive() {
				handleErr(fmt.Errorf("refusing to reset without a terminal, pass --yes"))
			}

			var confirm bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Restore all " + constant.PluginName + " settings to their defaults?",
				Default: false,
			}, &confirm))

			if !confirm {
				return
			}
		}

		handleErr(openSettings().Reset())
		fmt.Printf("%s settings reset\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	settingsCmd.AddCommand(settingsSchemaCmd)
	settingsSchemaCmd.SetOut(os.Stdout)
}

var settingsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the stored settings blob",
	Run: func(cmd *cobra.Command, args []string) {
		schema := (&jsonschema.Reflector{DoNotReference: true}).Reflect(&settings.Settings{})
		schema.Title = constant.PluginName + " settings"

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
