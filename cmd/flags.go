package cmd

import (
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/spf13/cobra"
)

// addConfigFlags adds flags that override configuration.
func addConfigFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringP("format", "f", "",
		"output format: csv, tsv, compact or pretty")
	fs.Bool("simplify", true,
		"return flat lists instead of full tables")
	fs.BoolP("continue", "c", false,
		"continue the batch when a source fails")
	fs.StringP("archive", "a", "",
		"save results to 'sqlite' or 'postgres' archive")
	fs.BoolP("verbose", "v", false,
		"print diagnostics about unresolved names")
	fs.Bool("canonical", false,
		"send canonical forms of names to sources")
	fs.String("code", "",
		"nomenclatural code for parsing names (zoological, botanical, bacterial, virus)")
	fs.Bool("debug", false,
		"log every HTTP request")
	fs.StringSlice("header", nil,
		"HTTP header for every request, e.g. 'X-Token: abc'")
}

// flagOptions converts explicitly set flags to configuration options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	fs := cmd.Flags()
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		s, _ := fs.GetString("format")
		res = append(res, config.OptOutputFormat(s))
	}
	if changed("simplify") {
		b, _ := fs.GetBool("simplify")
		res = append(res, config.OptSimplify(b))
	}
	if changed("continue") {
		b, _ := fs.GetBool("continue")
		res = append(res, config.OptContinueOnError(b))
	}
	if changed("archive") {
		s, _ := fs.GetString("archive")
		res = append(res, config.OptArchiveType(s))
	}
	if changed("verbose") {
		b, _ := fs.GetBool("verbose")
		res = append(res, config.OptVerbose(b))
	}
	if changed("canonical") {
		b, _ := fs.GetBool("canonical")
		res = append(res, config.OptWithCanonical(b))
	}
	if changed("code") {
		s, _ := fs.GetString("code")
		res = append(res, config.OptCode(s))
	}
	if changed("debug") {
		b, _ := fs.GetBool("debug")
		res = append(res, config.OptHTTPDebug(b))
	}
	if changed("header") {
		hs, _ := fs.GetStringSlice("header")
		res = append(res, config.OptHTTPHeaders(parseHeaders(hs)))
	}
	if changed("port") {
		i, _ := fs.GetInt("port")
		res = append(res, config.OptServerPort(i))
	}
	return res
}

// parseHeaders converts 'Key: Value' strings to a map.
func parseHeaders(hs []string) map[string]string {
	res := make(map[string]string, len(hs))
	for _, v := range hs {
		k, val, ok := strings.Cut(v, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			gn.Warn("Ignoring malformed header <em>%s</em>", v)
			continue
		}
		res[k] = strings.TrimSpace(val)
	}
	return res
}
