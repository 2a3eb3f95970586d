package text

import (
	"regexp"
	"strings"
)

// CatalogueOptions selects and parameterizes the rewrite rules. Empty
// fields disable the rules that depend on them.
type CatalogueOptions struct {
	OldPackage string
	NewPackage string

	OldAPIRoot string
	NewAPIRoot string

	MarkerNames    []string
	MarkerPrefixes []string
	MarkerImport   string

	MarkerInterface string
}

// Catalogue assembles the ordered rule list for one run: declaration,
// imports, annotations, interface markers, then dialect syntax.
func Catalogue(opts CatalogueOptions) []Rule {
	var rules []Rule

	if opts.OldPackage != "" && opts.NewPackage != "" {
		rules = append(rules, PackageRelocation(opts.OldPackage, opts.NewPackage))
	}
	if opts.OldAPIRoot != "" && opts.NewAPIRoot != "" {
		rules = append(rules, ImportRemap(opts.OldAPIRoot, opts.NewAPIRoot))
	}
	if len(opts.MarkerNames) > 0 || len(opts.MarkerPrefixes) > 0 {
		rules = append(rules, AnnotationStrip(opts.MarkerNames, opts.MarkerPrefixes))
	}
	if opts.MarkerImport != "" {
		rules = append(rules, MarkerImportStrip(opts.MarkerImport))
	}
	if opts.MarkerInterface != "" {
		rules = append(rules,
			InterfaceListEdit(opts.MarkerInterface),
			InterfaceImportStrip(opts.MarkerInterface),
		)
	}
	rules = append(rules, CatchBinder(), CaseBinder())

	return rules
}

// PackageRelocation moves the package declaration from oldPkg to newPkg.
func PackageRelocation(oldPkg, newPkg string) Rule {
	return Rule{
		Name: "package-relocation",
		Steps: []Step{
			step(`(?m)^package\s+`+regexp.QuoteMeta(oldPkg)+`;`,
				"package "+templateEscape(newPkg)+";"),
		},
	}
}

// ImportRemap rewrites import statements under oldRoot to live under
// newRoot. Only the namespace root changes, the member path stays.
func ImportRemap(oldRoot, newRoot string) Rule {
	return Rule{
		Name: "import-remap",
		Steps: []Step{
			step(`(?m)^(\s*import\s+)`+regexp.QuoteMeta(oldRoot)+`\.`,
				"${1}"+templateEscape(newRoot)+"."),
		},
	}
}

// AnnotationStrip deletes whole annotation lines. Exact names match the
// annotation alone, prefixes match any annotation under that namespace.
func AnnotationStrip(names, prefixes []string) Rule {
	alts := make([]string, 0, len(names)+len(prefixes))
	for _, p := range prefixes {
		alts = append(alts, regexp.QuoteMeta(p))
	}
	for _, n := range names {
		alts = append(alts, regexp.QuoteMeta(n)+`\b`)
	}
	return Rule{
		Name: "annotation-strip",
		Steps: []Step{
			step(`(?m)^\s*@(?:`+strings.Join(alts, "|")+`).*\n`, ""),
		},
	}
}

// MarkerImportStrip deletes the import line for the marker annotation.
func MarkerImportStrip(importPath string) Rule {
	return Rule{
		Name: "marker-import-strip",
		Steps: []Step{
			step(`(?m)^\s*import\s+`+regexp.QuoteMeta(importPath)+`;\s*\n`, ""),
		},
	}
}

// InterfaceListEdit removes the marker interface from implements clauses.
// Three shapes occur: the marker leads the list, sits in the middle or at
// the end, or is the only interface.
func InterfaceListEdit(iface string) Rule {
	quoted := regexp.QuoteMeta(iface)
	return Rule{
		Name: "interface-list-edit",
		Steps: []Step{
			// "implements Marker, Other" -> "implements Other"
			step(`\bimplements\s+`+quoted+`\s*,\s*`, "implements "),
			// "implements Other, Marker" -> "implements Other"
			step(`(\bimplements\s+[^{\n]*?)\s*,\s*`+quoted+`\b`, "${1}"),
			// "implements Marker {" -> "{"
			step(`\bimplements\s+`+quoted+`\b\s*`, ""),
		},
	}
}

// InterfaceImportStrip deletes import lines that still mention the marker
// interface after the implements clauses were edited.
func InterfaceImportStrip(iface string) Rule {
	return Rule{
		Name: "interface-import-strip",
		Steps: []Step{
			step(`(?m)^\s*import\s+.*`+regexp.QuoteMeta(iface)+`;\s*\n`, ""),
		},
	}
}

// CatchBinder renames unnamed catch binders to e, keeping the original
// spacing around the clause intact.
func CatchBinder() Rule {
	return Rule{
		Name: "catch-binder",
		Steps: []Step{
			step(`(catch\s*\()([^)]*)\b_\s*\)`, "${1}${2}e)"),
		},
	}
}

// CaseBinder renames unnamed switch-case binders to v.
func CaseBinder() Rule {
	return Rule{
		Name: "case-binder",
		Steps: []Step{
			step(`case\s+([A-Za-z0-9_$.<>\[\]]+)\s+_\s*->`, "case ${1} v ->"),
		},
	}
}
