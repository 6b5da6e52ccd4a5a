package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archlens/model"
)

func TestRegexGoModFallback(t *testing.T) {
	content := []byte(`module github.com/example/svc

go 1.23

require (
	github.com/foo/bar v1.2.3
	github.com/baz/qux v0.1.0 // indirect
)
`)
	modulePath, requires := regexGoMod(content)
	assert.Equal(t, "github.com/example/svc", modulePath)
	assert.Len(t, requires, 2)
	assert.Equal(t, "github.com/foo/bar", requires[0].path)
	assert.False(t, requires[0].indirect)
	assert.True(t, requires[1].indirect)
}

func TestInterpolate(t *testing.T) {
	props := map[string]string{"project.version": "1.2.0"}
	assert.Equal(t, "1.2.0", interpolate("${project.version}", props))
	assert.Equal(t, "2.0.0", interpolate("2.0.0", props))
}

func TestSplitPep508(t *testing.T) {
	name, version := splitPep508("requests>=2.0")
	assert.Equal(t, "requests", name)
	assert.Equal(t, ">=2.0", version)
}

func TestParseGemfile(t *testing.T) {
	specs := parseGemfile([]string{
		`source "https://rubygems.org"`,
		`gem 'rails', '7.0.0'`,
		`gem "sidekiq"`,
	})
	assert.Len(t, specs, 2)
	assert.Equal(t, gemSpec{name: "rails", version: "7.0.0", scope: model.ScopeCompile}, specs[0])
	assert.Equal(t, gemSpec{name: "sidekiq", version: "", scope: model.ScopeCompile}, specs[1])
}

func TestParseGemfileGroups(t *testing.T) {
	specs := parseGemfile([]string{
		`source "https://rubygems.org"`,
		`gem 'rails', '7.0.0'`,
		`group :development do`,
		`  gem 'byebug'`,
		`end`,
		`group :development, :test do`,
		`  gem 'rspec-rails'`,
		`end`,
	})
	assert.Len(t, specs, 3)
	assert.Equal(t, gemSpec{name: "rails", version: "7.0.0", scope: model.ScopeCompile}, specs[0])
	assert.Equal(t, gemSpec{name: "byebug", version: "", scope: model.ScopeDev}, specs[1])
	assert.Equal(t, gemSpec{name: "rspec-rails", version: "", scope: model.ScopeTest}, specs[2])
}
