package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tokenagents/character-registry/internal/model"
)

var serviceURL string
var debug bool

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func client() *resty.Client {
	return resty.New().
		SetBaseURL(serviceURL).
		SetTimeout(15 * time.Second)
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "characterctl",
		Short: "Admin CLI for the character registry",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("CHARACTER_REGISTRY_URL", "http://localhost:3000")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the character registry")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newUpdateSettingsCmd())
	rootCmd.AddCommand(newDeleteCmd())

	return rootCmd
}

func newAddCmd() *cobra.Command {
	var tokenID int64
	var name, file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a character from a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var data model.CharacterData
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			log.Debug().Int64("token_id", tokenID).Str("name", name).Msg("adding character")
			resp, err := client().R().
				SetBody(map[string]interface{}{
					"tokenId":        tokenID,
					"name":           name,
					"character_data": data,
				}).
				Post("/character")
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("registry returned %s: %s", resp.Status(), resp.Body())
			}
			fmt.Printf("Character added: %s (token %d)\n", name, tokenID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&tokenID, "token-id", 0, "Token ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Character name (required)")
	cmd.Flags().StringVar(&file, "file", "", "Path to character JSON document (required)")
	_ = cmd.MarkFlagRequired("token-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newGetCmd() *cobra.Command {
	var tokenID int64

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a character document",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().Get(fmt.Sprintf("/character/%d", tokenID))
			if err != nil {
				return err
			}
			if resp.StatusCode() == 404 {
				return fmt.Errorf("character %d not found", tokenID)
			}
			if resp.IsError() {
				return fmt.Errorf("registry returned %s: %s", resp.Status(), resp.Body())
			}
			fmt.Println(string(resp.Body()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&tokenID, "token-id", 0, "Token ID (required)")
	_ = cmd.MarkFlagRequired("token-id")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List character summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().Get("/fetch-characters")
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("registry returned %s: %s", resp.Status(), resp.Body())
			}
			var body struct {
				CharacterNames []model.CharacterSummary `json:"characterNames"`
			}
			if err := json.Unmarshal(resp.Body(), &body); err != nil {
				return err
			}
			for _, s := range body.CharacterNames {
				fmt.Printf("%d\t%s\n", s.TokenID, s.Name)
			}
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Relay all character summaries to the Eliza server",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().Get("/init-characters")
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("registry returned %s: %s", resp.Status(), resp.Body())
			}
			fmt.Println("Characters initialized")
			return nil
		},
	}
}

func newUpdateSettingsCmd() *cobra.Command {
	var tokenID int64
	var file string

	cmd := &cobra.Command{
		Use:   "update-settings",
		Short: "Merge per-channel settings into a character",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var settings map[string]interface{}
			if err := json.Unmarshal(raw, &settings); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			resp, err := client().R().
				SetBody(map[string]interface{}{
					"tokenId": tokenID,
					"new_character_data": map[string]interface{}{
						"settings": settings,
					},
				}).
				Post("/update-character-settings")
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("registry returned %s: %s", resp.Status(), resp.Body())
			}
			fmt.Println(string(resp.Body()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&tokenID, "token-id", 0, "Token ID (required)")
	cmd.Flags().StringVar(&file, "file", "", "Path to settings JSON, e.g. {\"discord\":{\"token\":\"...\"}} (required)")
	_ = cmd.MarkFlagRequired("token-id")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var tokenID int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a character",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().R().Delete(fmt.Sprintf("/character/%d", tokenID))
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("registry returned %s: %s", resp.Status(), resp.Body())
			}
			fmt.Printf("Character %d deleted\n", tokenID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&tokenID, "token-id", 0, "Token ID (required)")
	_ = cmd.MarkFlagRequired("token-id")
	return cmd
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
