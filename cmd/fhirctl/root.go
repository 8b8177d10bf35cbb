package main

import (
	"context"
	"ember-emr-service/internal/app/config"
	"ember-emr-service/internal/app/services/fhirclient"
	"ember-emr-service/internal/pkg/constvars"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	serverURL     string
	timeout       time.Duration
	authorization string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "fhirctl",
		Short:         "Read and write resources on a FHIR R4 server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.serverURL, "server-url", "s", "", "FHIR base URL (default $FHIR_SERVER_URL or "+constvars.FhirDefaultBaseURL+")")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "request timeout (default $FHIR_TIMEOUT_IN_MILLIS)")
	flags.StringVar(&opts.authorization, "authorization", "", "Authorization header value (default $FHIR_AUTHORIZATION)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(
		newGetCmd(opts),
		newSearchCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return rootCmd
}

// client builds a FHIR client from the environment, overridden by flags.
func (o *rootOptions) client() (*fhirclient.Client, error) {
	internalConfig := config.NewInternalConfig()
	options := internalConfig.FHIROptions()

	if o.serverURL != "" {
		options.BaseURL = o.serverURL
	}
	if o.timeout > 0 {
		options.Timeout = o.timeout
	}
	if o.authorization != "" {
		options.Headers = config.MergeHeaders(options.Headers, map[string]string{
			constvars.HeaderAuthorization: o.authorization,
		})
	}

	logger := zap.NewNop()
	if o.verbose {
		devLogger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = devLogger
	}

	return fhirclient.NewClient(config.NewFHIRConfig(internalConfig.App.Env, options), logger)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(out io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}
