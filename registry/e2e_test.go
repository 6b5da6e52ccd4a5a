package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/archlens/aggregator"
	"github.com/viant/archlens/config"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/pipeline"
)

func writeFixture(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func runPipeline(t *testing.T, root string) *model.ArchitectureModel {
	t.Helper()
	reg, err := Build(fileindex.New())
	require.NoError(t, err)

	run := pipeline.NewDriver(reg).Run(context.Background(), pipeline.Options{RootPath: root})
	return aggregator.Aggregate("proj", "1.0.0", []string{root}, run.Results, run.Order)
}

// TestSpringAndJpaProject is spec §8 scenario 1.
func TestSpringAndJpaProject(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "pom.xml", `<project>
  <dependencies>
    <dependency><groupId>org.springframework.boot</groupId><artifactId>spring-boot-starter-web</artifactId><version>3.2.0</version></dependency>
    <dependency><groupId>org.springframework.boot</groupId><artifactId>spring-boot-starter-data-jpa</artifactId><version>3.2.0</version></dependency>
  </dependencies>
</project>`)
	writeFixture(t, root, "src/main/java/com/example/UserController.java", `package com.example;

@RestController
@RequestMapping("/api/users")
public class UserController {
    @GetMapping
    public List<User> list() { return null; }

    @GetMapping("/{id}")
    public User get(Long id) { return null; }

    @PostMapping
    public User create(User user) { return null; }
}
`)
	writeFixture(t, root, "src/main/java/com/example/User.java", `package com.example;

@Entity
@Table(name="users")
public class User {
    @Id
    Long id;
    String name;
    @OneToMany
    List<Order> orders;
}
`)

	arch := runPipeline(t, root)

	assert.GreaterOrEqual(t, len(arch.Dependencies), 2)
	assert.Len(t, arch.ApiEndpoints, 3)

	var paths, methods []string
	for _, ep := range arch.ApiEndpoints {
		paths = append(paths, ep.Path)
		methods = append(methods, ep.Method)
		assert.Equal(t, model.HIGH, ep.Confidence)
	}
	assert.ElementsMatch(t, []string{"/api/users", "/api/users/{id}", "/api/users"}, paths)
	assert.ElementsMatch(t, []string{"GET", "GET", "POST"}, methods)

	require.Len(t, arch.DataEntities, 1)
	entity := arch.DataEntities[0]
	assert.Equal(t, "users", entity.StoreName)
	assert.Equal(t, "id", entity.PrimaryKey)
	assert.Len(t, entity.Fields, 3)
	assert.Equal(t, model.HIGH, entity.Confidence)

	require.Len(t, arch.Relationships, 1)
	rel := arch.Relationships[0]
	assert.Equal(t, model.RelDependsOn, rel.Kind)
	assert.Equal(t, "One-to-Many", rel.Description)
	assert.Equal(t, model.ComponentID("Order"), rel.TargetID)
}

// TestFastAPIWithBrokenFile is spec §8 scenario 2.
func TestFastAPIWithBrokenFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "pyproject.toml", `[project]
name = "demo"
version = "0.1.0"
dependencies = ["fastapi>=0.110.0"]
`)
	writeFixture(t, root, "app/main.py", `from fastapi import FastAPI
app = FastAPI()

@app.get("/users")
def list_users():
    return []
`)
	writeFixture(t, root, "app/bad.py", `def broken(
    pass
`)

	arch := runPipeline(t, root)

	// The malformed sibling file must not stop app/main.py's endpoint from
	// being found, and must not abort the run (spec §8 scenario 2: pipeline
	// exit 0 regardless of per-file parse outcomes).
	require.Len(t, arch.ApiEndpoints, 1)
	assert.Equal(t, "/users", arch.ApiEndpoints[0].Path)
	assert.Equal(t, "GET", arch.ApiEndpoints[0].Method)
	assert.Equal(t, model.HIGH, arch.ApiEndpoints[0].Confidence)

	fastAPIStats := arch.Quality.StatisticsByAnalyzer["fastapi-rest"]
	require.NotNil(t, fastAPIStats)
	assert.Equal(t, 2, fastAPIStats.FilesScanned)
}

// TestGemfileAndRailsControllers is spec §8 scenario 3.
func TestGemfileAndRailsControllers(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Gemfile", `source 'https://rubygems.org'
gem 'rails', '~>7.0'
group :test do
  gem 'rspec-rails'
end
`)
	writeFixture(t, root, "app/controllers/users_controller.rb", `class UsersController < ApplicationController
  def index
  end

  def show
  end

  def create
  end
end
`)

	arch := runPipeline(t, root)

	assert.GreaterOrEqual(t, len(arch.Dependencies), 2)
	require.Len(t, arch.ApiEndpoints, 3)

	var paths []string
	for _, ep := range arch.ApiEndpoints {
		paths = append(paths, ep.Method+" "+ep.Path)
	}
	assert.ElementsMatch(t, []string{"GET /users", "GET /users/:id", "POST /users"}, paths)
}

// TestGraphQLSchema is spec §8 scenario 4.
func TestGraphQLSchema(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "schema.graphql", `type User {
  id: ID!
  name: String!
}

input CreateUserInput {
  name: String!
}

type Query {
  getUser(id: ID!): User
}

type Mutation {
  createUser(input: CreateUserInput!): User
}
`)

	arch := runPipeline(t, root)

	require.Len(t, arch.DataEntities, 2)
	require.Len(t, arch.ApiEndpoints, 2)

	var kinds []model.ApiEndpointKind
	for _, ep := range arch.ApiEndpoints {
		kinds = append(kinds, ep.Kind)
		assert.Equal(t, "User", ep.ResponseSchema)
	}
	assert.ElementsMatch(t, []model.ApiEndpointKind{model.KindGraphQLQuery, model.KindGraphQLMutation}, kinds)
}

// TestUnknownAnalyzerIDInExplicitMode is spec §8 scenario 6.
func TestUnknownAnalyzerIDInExplicitMode(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "go.mod", "module example.com/unused\n\ngo 1.23\n")

	cfg, err := config.Parse([]byte(`project:
  name: demo
scanners:
  mode: EXPLICIT
  enabled: [maven-deps-typo]
`))
	require.NoError(t, err)

	reg, err := Build(fileindex.New())
	require.NoError(t, err)

	run := pipeline.NewDriver(reg).Run(context.Background(), pipeline.Options{
		RootPath: root, Mode: "EXPLICIT", Enabled: cfg.Scanners.Enabled,
	})
	assert.Equal(t, []string{"maven-deps-typo"}, run.UnknownIDs)

	arch := aggregator.Aggregate("proj", "1.0.0", []string{root}, run.Results, run.Order)
	assert.Empty(t, arch.Components)
	assert.Empty(t, arch.ApiEndpoints)
	assert.Empty(t, arch.Dependencies)
}
