package main

import (
	"ember-emr-service/internal/app/services/fhirclient"
	"ember-emr-service/internal/pkg/fhir_dto"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "get TYPE ID",
		Short:   "Read one resource",
		Example: "  fhirctl get Patient patient-1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}

			resource, err := client.GetResource(commandContext(cmd), args[0], args[1])
			if err != nil {
				return notFoundError(err, args[0], args[1])
			}
			return printJSON(cmd.OutOrStdout(), resource)
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "search TYPE [NAME=VALUE...]",
		Short:   "Search a resource type, printing the result bundle",
		Example: "  fhirctl search Observation patient=patient-1 category=vital-signs _count=5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseSearchArgs(args[1:])
			if err != nil {
				return err
			}

			client, err := opts.client()
			if err != nil {
				return err
			}

			bundle, err := client.SearchResources(commandContext(cmd), args[0], params)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), bundle); err != nil {
				return err
			}

			// Paging is left to the operator.
			for _, link := range bundle.Links() {
				if link.Relation == "next" {
					fmt.Fprintf(cmd.ErrOrStderr(), "next page: %s\n", link.URL)
				}
			}
			return nil
		},
	}
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "create FILE",
		Short:   "Create the resource read from FILE (- for stdin)",
		Example: "  fhirctl create observation.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := readResource(cmd, args[0])
			if err != nil {
				return err
			}

			client, err := opts.client()
			if err != nil {
				return err
			}

			created, err := client.CreateResource(commandContext(cmd), resource)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "update TYPE ID FILE",
		Short:   "Replace a resource with the one read from FILE (- for stdin)",
		Example: "  fhirctl update Patient patient-1 patient.json",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := readResource(cmd, args[2])
			if err != nil {
				return err
			}

			client, err := opts.client()
			if err != nil {
				return err
			}

			updated, err := client.UpdateResource(commandContext(cmd), args[0], args[1], resource)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), updated)
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TYPE ID",
		Short: "Delete one resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}

			if err = client.DeleteResource(commandContext(cmd), args[0], args[1]); err != nil {
				return notFoundError(err, args[0], args[1])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s\n", args[0], args[1])
			return err
		},
	}
}

func notFoundError(err error, resourceType, id string) error {
	if fhirclient.IsNotFound(err) {
		return fmt.Errorf("%s/%s does not exist: %w", resourceType, id, err)
	}
	return err
}

// parseSearchArgs keeps the command line order of NAME=VALUE arguments.
func parseSearchArgs(args []string) (fhir_dto.SearchParams, error) {
	var params fhir_dto.SearchParams
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid search parameter %q, expected NAME=VALUE", arg)
		}
		params = params.Set(name, value)
	}
	return params, nil
}

func readResource(cmd *cobra.Command, path string) (fhir_dto.Resource, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var resource fhir_dto.Resource
	if err := json.Unmarshal(data, &resource); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if resource.ResourceType() == "" {
		return nil, fmt.Errorf("%s has no resourceType", path)
	}
	return resource, nil
}
