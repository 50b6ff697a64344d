package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// dateFlagLayout is the layout accepted by --from and --to.
const dateFlagLayout = "2006-01-02"

// submitFlags holds the form values given on the command line.
type submitFlags struct {
	apiKey     string
	password   string
	storeURL   string
	apiVersion string
	from       string
	to         string
	full       bool
	json       bool
}

var (
	fetchFlags submitFlags
	syncFlags  submitFlags
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Ask the backend to fetch orders for a store",
	Long: `Validate the store credentials and date range, then ask the backend to
fetch orders created in that range.

The API key and password are prompted for without echo when not given.
A date range is required unless --full is set.`,
	Example: `  storesync fetch --store-url my-shop.myshopify.com --from 2025-01-01 --to 2025-01-31
  storesync fetch --store-url my-shop.myshopify.com --full`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSubmit(cmd, domain.OperationFetch, &fetchFlags)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Ask the backend to sync fetched orders for a store",
	Long: `Validate the store credentials, then ask the backend to sync orders it
has already fetched. The date range is optional for a sync.

The API key and password are prompted for without echo when not given.`,
	Example: `  storesync sync --store-url my-shop.myshopify.com
  storesync sync --store-url my-shop.myshopify.com --full`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSubmit(cmd, domain.OperationSync, &syncFlags)
	},
}

func init() {
	registerSubmitFlags(fetchCmd, &fetchFlags)
	registerSubmitFlags(syncCmd, &syncFlags)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(syncCmd)
}

func registerSubmitFlags(cmd *cobra.Command, f *submitFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.apiKey, "api-key", "", "Shopify API key (prompted when empty)")
	flags.StringVar(&f.password, "password", "", "Shopify API password (prompted when empty)")
	flags.StringVar(&f.storeURL, "store-url", "", "store domain, e.g. my-shop.myshopify.com")
	flags.StringVar(&f.apiVersion, "api-version", "", "Shopify API version (default from api.default_version)")
	flags.StringVar(&f.from, "from", "", "start date, YYYY-MM-DD")
	flags.StringVar(&f.to, "to", "", "end date, YYYY-MM-DD")
	flags.BoolVar(&f.full, "full", false, "full fetch & sync, ignores the date range")
	flags.BoolVar(&f.json, "json", false, "output the result as JSON")
}

// submissionOutput is the --json shape of a submission result.
type submissionOutput struct {
	Kind       string `json:"kind"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

// submissionError reports a submission the backend did not accept.
type submissionError struct {
	result domain.SubmissionResult
}

func (e *submissionError) Error() string {
	return e.result.Message
}

func (e *submissionError) Unwrap() error {
	return e.result.Err
}

func runSubmit(cmd *cobra.Command, kind domain.OperationKind, f *submitFlags) error {
	if err := requireConsole(); err != nil {
		return err
	}

	if err := fillForm(cmd, f); err != nil {
		return err
	}

	result, err := consoleService.Submit(cmd.Context(), kind)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			for _, msg := range verrs {
				cmd.PrintErrf("  - %s\n", msg)
			}
			return fmt.Errorf("%s not sent: %w", kind, domain.ErrInvalidInput)
		}
		return fmt.Errorf("%s: %w", kind, err)
	}

	if f.json {
		if err := printJSON(cmd.OutOrStdout(), submissionOutput{
			Kind:       result.Kind.String(),
			Outcome:    string(result.Outcome),
			StatusCode: result.StatusCode,
			Message:    result.Message,
		}); err != nil {
			return err
		}
	}

	if !result.Succeeded() {
		return &submissionError{result: result}
	}

	if !f.json {
		cmd.Println(result.Message)
	}
	return nil
}

type fieldValue struct {
	field domain.Field
	value string
}

// fillForm pushes the flag values through the console so the same
// transitions apply as in the interactive form.
func fillForm(cmd *cobra.Command, f *submitFlags) error {
	p := newPrompter(cmd)

	apiKey := f.apiKey
	if apiKey == "" {
		v, err := p.secret("API key")
		if err != nil {
			return err
		}
		apiKey = v
	}

	password := f.password
	if password == "" {
		v, err := p.secret("Password")
		if err != nil {
			return err
		}
		password = v
	}

	logger.Debug("credentials: key %s, password %s", describeSecret(apiKey), describeSecret(password))

	fields := []fieldValue{
		{domain.FieldAPIKey, apiKey},
		{domain.FieldPassword, password},
		{domain.FieldStoreURL, strings.TrimSpace(f.storeURL)},
		{domain.FieldFullFetchSync, strconv.FormatBool(f.full)},
	}
	if f.apiVersion != "" {
		fields = append(fields, fieldValue{domain.FieldAPIVersion, f.apiVersion})
	}

	for _, fv := range fields {
		if err := consoleService.UpdateField(fv.field, fv.value); err != nil {
			return fmt.Errorf("setting %s: %w", fv.field, err)
		}
	}

	dates := []struct {
		field domain.Field
		flag  string
		value string
	}{
		{domain.FieldCreatedAtMin, "--from", f.from},
		{domain.FieldCreatedAtMax, "--to", f.to},
	}
	for _, d := range dates {
		date, err := parseDateFlag(d.flag, d.value)
		if err != nil {
			return err
		}
		if date == nil {
			continue
		}
		if err := consoleService.UpdateDate(d.field, date); err != nil {
			var rangeErr *domain.DateRangeError
			if errors.As(err, &rangeErr) {
				return fmt.Errorf("%s: %s", d.flag, rangeErr.Message)
			}
			return fmt.Errorf("%s: %w", d.flag, err)
		}
	}
	return nil
}

func parseDateFlag(flag, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateFlagLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%s: expected a date like 2024-01-31: %w", flag, domain.ErrInvalidInput)
	}
	return &t, nil
}
