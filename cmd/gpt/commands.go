package main

import (
	"github.com/spf13/cobra"

	"github.com/pbrown/gptcli/internal/render"
)

func (a *App) newRootCmd() *cobra.Command {
	var reset bool

	root := &cobra.Command{
		Use:   "gpt",
		Short: "A ChatGPT CLI",
		Long: `gpt asks questions of a hosted chat-completion API.

The API key, selected model and the conversation so far are stored locally;
every question is sent together with the whole conversation.`,
		// Unknown subcommands fall through to the help output.
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE:  a.loadSettings,
		PersistentPostRunE: a.saveSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				a.settings.ClearTranscript()
				a.printer.Status("New chat started")
				return nil
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolVar(&reset, "reset", false, "Clear the conversation (same as the reset command)")

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(usageFlagError)
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.newInitCmd(),
		a.newResetCmd(),
		a.newQuestionCmd(),
		a.newChangeModelCmd(),
		a.newHistoryCmd(),
		a.newModelsCmd(),
	)
	return root
}

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <KEY>",
		Short: "Store the API key to use",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.settings.SetCredential(args[0])
			a.printer.Status("New API key now being used")
			return nil
		},
	}
}

func (a *App) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start a new conversation",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.settings.ClearTranscript()
			a.printer.Status("New chat started")
			return nil
		},
	}
}

func (a *App) newQuestionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <QUESTION>",
		Short: "Ask a question in the current conversation",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := a.newClient().Ask(cmd.Context(), a.settings, args[0])
			if err != nil {
				return err
			}
			reply, _ := record.Reply()
			a.printer.Reply(reply)
			return nil
		},
	}
}

func (a *App) newChangeModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-model <MODEL>",
		Short: "Change the model that is being used",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.settings.SelectModel(args[0])
			a.printer.Status("Model changed to " + args[0])
			return nil
		},
	}
}

func (a *App) newHistoryCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the current conversation",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return usageFlagError(cmd, err)
			}
			return a.printer.Transcript(a.settings.Transcript, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "Output format: text, json or yaml")
	return cmd
}

func (a *App) newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available to the stored API key",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.newClient().ListModels(cmd.Context(), a.settings)
			if err != nil {
				return err
			}
			a.printer.Models(ids, a.settings.ModelID)
			return nil
		},
	}
}
