package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
)

type catalogEntry struct {
	Name      string            `json:"name"`
	Group     string            `json:"group"`
	Endpoint  string            `json:"endpoint"`
	Summary   string            `json:"summary"`
	Params    map[string]string `json:"params,omitempty"`
	Statement string            `json:"statement,omitempty"`
}

func newCatalogCmd() *cobra.Command {
	var (
		group     string
		asJSON    bool
		withQuery bool
	)
	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "List the queries served by the API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			defs := cat.All()
			if group != "" {
				defs = cat.Group(domain.QueryGroup(strings.ToLower(group)))
				if len(defs) == 0 {
					return fmt.Errorf("unknown group '%s' (known: %s)", group, joinGroups(cat.Groups()))
				}
			}

			entries := make([]catalogEntry, 0, len(defs))
			for _, def := range defs {
				entry := catalogEntry{
					Name:     def.Name,
					Group:    string(def.Group),
					Endpoint: endpointOf(def),
					Summary:  def.Summary,
				}
				if len(def.Params) > 0 {
					entry.Params = make(map[string]string, len(def.Params))
					for _, p := range def.Params {
						entry.Params[p.Name] = p.Default
					}
				}
				if withQuery {
					entry.Statement = def.Statement
				}
				entries = append(entries, entry)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tGROUP\tENDPOINT\tPARAMS\tSUMMARY")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Group, e.Endpoint, formatParams(e.Params), e.Summary)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "Only list one group (booking, flight, payment, customer, event, count)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	cmd.Flags().BoolVar(&withQuery, "sql", false, "Include the SQL statement (JSON output only)")
	return cmd
}

func endpointOf(def *domain.QueryDefinition) string {
	if def.Group == domain.GroupCount {
		return "/v0/counts/"
	}
	return "/v0/" + def.Name + "/"
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, k := range slices.Sorted(maps.Keys(params)) {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, ",")
}

func joinGroups(groups []domain.QueryGroup) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
