package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/plancraft/internal/infrastructure/config"
	infraai "github.com/felixgeelhaar/plancraft/pkg/ai"
)

func newAICmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Manage AI configuration",
	}
	cmd.AddCommand(newAIConfigureCmd(opts), newAIShowCmd(opts))
	return cmd
}

type aiFlags struct {
	provider    string
	model       string
	retries     int
	timeout     int
	rpm         int
	interactive bool
}

func newAIConfigureCmd(opts *rootOptions) *cobra.Command {
	var flags aiFlags

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure the AI provider and its retry, timeout and rate settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot()
			if err != nil {
				return fmt.Errorf("resolve project path: %w", err)
			}

			aiCfg, err := config.LoadAIConfig(root)
			if err != nil {
				return fmt.Errorf("failed to load AI config: %w", err)
			}
			if aiCfg == nil {
				aiCfg = &config.AIConfig{}
			}

			if flags.interactive {
				err = promptAIConfig(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), aiCfg)
			} else {
				err = applyAIFlags(cmd, &flags, aiCfg)
			}
			if err != nil {
				return err
			}

			if err := config.SaveAIConfig(root, aiCfg); err != nil {
				return NewCLIError("failed to save AI config", "Supported providers: "+strings.Join(infraai.SupportedProviders(), ", "), err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "AI configuration saved to .plancraft/ai.yaml.")
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("API keys are read from GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY."))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.provider, "provider", "", "AI provider ("+strings.Join(infraai.SupportedProviders(), "/")+")")
	cmd.Flags().StringVar(&flags.model, "model", "", "AI model identifier")
	cmd.Flags().IntVar(&flags.retries, "retries", 1, "Retries after a failed call (0 or 1)")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 60, "Timeout per generation in seconds")
	cmd.Flags().IntVar(&flags.rpm, "rpm", 0, "Maximum requests per minute (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.interactive, "interactive", false, "Prompt for AI configuration interactively")
	return cmd
}

func newAIShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective AI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot()
			if err != nil {
				return fmt.Errorf("resolve project path: %w", err)
			}
			aiCfg, err := config.LoadAIConfig(root)
			if err != nil {
				return fmt.Errorf("failed to load AI config: %w", err)
			}

			provider, model := "gemini", ""
			if aiCfg != nil {
				provider = defaultString(aiCfg.Provider, provider)
				model = aiCfg.Model
			}
			rc := aiCfg.Resilience()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", sectionStyle.Render("Provider:"), provider)
			fmt.Fprintf(out, "%s %s\n", sectionStyle.Render("Model:"), defaultString(model, "(provider default)"))
			fmt.Fprintf(out, "%s %d\n", sectionStyle.Render("Retries:"), rc.MaxRetries)
			fmt.Fprintf(out, "%s %s\n", sectionStyle.Render("Timeout:"), rc.Timeout)
			if rc.RequestsPerMinute > 0 {
				fmt.Fprintf(out, "%s %d/min\n", sectionStyle.Render("Rate limit:"), rc.RequestsPerMinute)
			} else {
				fmt.Fprintf(out, "%s none\n", sectionStyle.Render("Rate limit:"))
			}
			return nil
		},
	}
}

func applyAIFlags(cmd *cobra.Command, flags *aiFlags, aiCfg *config.AIConfig) error {
	changed := cmd.Flags().Changed
	if !changed("provider") && !changed("model") && !changed("retries") && !changed("timeout") && !changed("rpm") {
		return NewCLIError("no configuration provided", "Use --provider, --model, --retries, --timeout, --rpm or --interactive", nil)
	}

	if changed("provider") {
		aiCfg.Provider = strings.ToLower(strings.TrimSpace(flags.provider))
	}
	if changed("model") {
		aiCfg.Model = strings.TrimSpace(flags.model)
	}
	if changed("retries") {
		retries := flags.retries
		aiCfg.MaxRetries = &retries
	}
	if changed("timeout") {
		aiCfg.TimeoutSec = flags.timeout
	}
	if changed("rpm") {
		aiCfg.RequestsPerMinute = flags.rpm
	}
	return nil
}

func promptAIConfig(reader *bufio.Reader, out io.Writer, aiCfg *config.AIConfig) error {
	provider, err := promptString(reader, out, "AI provider ("+strings.Join(infraai.SupportedProviders(), "/")+")", defaultString(aiCfg.Provider, "gemini"))
	if err != nil {
		return err
	}
	aiCfg.Provider = strings.ToLower(provider)

	model, err := promptString(reader, out, "AI model (empty = provider default)", aiCfg.Model)
	if err != nil {
		return err
	}
	aiCfg.Model = model

	current := aiCfg.Resilience()
	retries, err := promptInt(reader, out, "Retries after a failed call (0 or 1)", current.MaxRetries)
	if err != nil {
		return err
	}
	aiCfg.MaxRetries = &retries

	timeout, err := promptInt(reader, out, "Timeout in seconds", int(current.Timeout.Seconds()))
	if err != nil {
		return err
	}
	aiCfg.TimeoutSec = timeout

	rpm, err := promptInt(reader, out, "Requests per minute (0 = unlimited)", current.RequestsPerMinute)
	if err != nil {
		return err
	}
	aiCfg.RequestsPerMinute = rpm
	return nil
}

func promptString(reader *bufio.Reader, out io.Writer, label string, def string) (string, error) {
	fmt.Fprintf(out, "%s [%s]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return def, nil
	}
	return value, nil
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, def int) (int, error) {
	for {
		value, err := promptString(reader, out, label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number.")
			continue
		}
		return parsed, nil
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
