// Package applicability implements the boolean strategy library analyzers
// use to gate whether they run at all on a project (spec §4.2). A Strategy
// is a pure, side-effect-free, cheap predicate over a model.ScanContext —
// it never parses file content, only checks for file presence and prior
// dependency findings.
package applicability

import (
	"strings"

	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/model"
)

// Strategy is a boolean predicate over a ScanContext.
type Strategy func(ctx *model.ScanContext) bool

// AlwaysApply always returns true.
func AlwaysApply(*model.ScanContext) bool { return true }

// NeverApply always returns false.
func NeverApply(*model.ScanContext) bool { return false }

// And returns a Strategy that is true iff every supplied strategy is true.
func And(strategies ...Strategy) Strategy {
	return func(ctx *model.ScanContext) bool {
		for _, s := range strategies {
			if !s(ctx) {
				return false
			}
		}
		return true
	}
}

// Or returns a Strategy that is true iff at least one supplied strategy is true.
func Or(strategies ...Strategy) Strategy {
	return func(ctx *model.ScanContext) bool {
		for _, s := range strategies {
			if s(ctx) {
				return true
			}
		}
		return false
	}
}

// Not negates a Strategy.
func Not(s Strategy) Strategy {
	return func(ctx *model.ScanContext) bool { return !s(ctx) }
}

// HasFiles returns a Strategy true iff any of the supplied globs (relative to
// each of ctx.SearchRoots) matches at least one file.
func HasFiles(globs ...string) Strategy {
	return func(ctx *model.ScanContext) bool {
		idx := fileindex.New()
		roots := ctx.SearchRoots
		if len(roots) == 0 {
			roots = []string{ctx.RootPath}
		}
		for _, root := range roots {
			for _, glob := range globs {
				matches, err := idx.FindFiles(root, glob)
				if err == nil && len(matches) > 0 {
					return true
				}
			}
		}
		return false
	}
}

// Language-family shorthands (spec §4.2).
var (
	hasJava       = HasFiles("**/*.java")
	hasPython     = HasFiles("**/*.py")
	hasCSharp     = HasFiles("**/*.cs")
	hasGo         = HasFiles("**/*.go")
	hasRuby       = HasFiles("**/*.rb")
	hasJavaScript = HasFiles("**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx")
)

// HasJava is true iff the project tree contains any .java file.
func HasJava(ctx *model.ScanContext) bool { return hasJava(ctx) }

// HasPython is true iff the project tree contains any .py file.
func HasPython(ctx *model.ScanContext) bool { return hasPython(ctx) }

// HasCSharp is true iff the project tree contains any .cs file.
func HasCSharp(ctx *model.ScanContext) bool { return hasCSharp(ctx) }

// HasGo is true iff the project tree contains any .go file.
func HasGo(ctx *model.ScanContext) bool { return hasGo(ctx) }

// HasRuby is true iff the project tree contains any .rb file.
func HasRuby(ctx *model.ScanContext) bool { return hasRuby(ctx) }

// HasJavaScript is true iff the project tree contains any JS/JSX/TS/TSX file.
func HasJavaScript(ctx *model.ScanContext) bool { return hasJavaScript(ctx) }

// HasAvro is true iff the project tree contains any .avsc schema file.
func HasAvro(ctx *model.ScanContext) bool { return HasFiles("**/*.avsc")(ctx) }

// HasGraphQL is true iff the project tree contains any .graphql/.gql schema file.
func HasGraphQL(ctx *model.ScanContext) bool { return HasFiles("**/*.graphql", "**/*.gql")(ctx) }

// HasGrpc is true iff the project tree contains any .proto service definition.
func HasGrpc(ctx *model.ScanContext) bool { return HasFiles("**/*.proto")(ctx) }

// HasSqlMigrations is true iff the project tree contains any .sql file.
func HasSqlMigrations(ctx *model.ScanContext) bool { return HasFiles("**/*.sql")(ctx) }

// HasDependency is true iff a prior ScanResult's Dependencies contains one
// whose GroupID or ArtifactID contains name (case-insensitive substring).
// Every Dependency a prior analyzer reported is considered, whatever its
// Direct flag; no dependency beyond those reports is resolved.
func HasDependency(name string) Strategy {
	needle := strings.ToLower(name)
	return func(ctx *model.ScanContext) bool {
		for _, result := range ctx.PriorResults {
			if result == nil {
				continue
			}
			for _, dep := range result.Dependencies {
				if strings.Contains(strings.ToLower(dep.GroupID), needle) ||
					strings.Contains(strings.ToLower(dep.ArtifactID), needle) {
					return true
				}
			}
		}
		return false
	}
}

// HasAnyDependency is true iff HasDependency is true for at least one of names.
func HasAnyDependency(names ...string) Strategy {
	strategies := make([]Strategy, len(names))
	for i, name := range names {
		strategies[i] = HasDependency(name)
	}
	return Or(strategies...)
}

// Framework shorthands built from HasAnyDependency, per spec §4.2.
var (
	HasSpring          = HasAnyDependency("spring-boot", "spring-web", "spring-core")
	HasJaxRs           = HasAnyDependency("jax-rs", "jersey", "resteasy")
	HasJpa             = HasAnyDependency("spring-boot-starter-data-jpa", "hibernate-core", "javax.persistence", "jakarta.persistence")
	HasKafka           = HasAnyDependency("kafka-clients", "spring-kafka")
	HasFastAPI         = HasAnyDependency("fastapi")
	HasFlask           = HasAnyDependency("flask")
	HasCelery          = HasAnyDependency("celery")
	HasAspNetCore      = HasAnyDependency("Microsoft.AspNetCore")
	HasEntityFramework = HasAnyDependency("Microsoft.EntityFrameworkCore")
	HasRails           = HasAnyDependency("rails")
)
