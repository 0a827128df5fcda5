package registry

import (
	"context"

	"github.com/neutralobj/go-neutralobj/fixture"
)

const (
	FixtureMain       = "fixture.main"
	FixtureMainSchema = "fixture.main_schema"
)

// RegisterFixtures adds both fixture variants to r.
func RegisterFixtures(r *Registry) error {
	if err := r.Register(FixtureMain, fixtureMain); err != nil {
		return err
	}
	return r.Register(FixtureMainSchema, fixtureMainSchema)
}

func fixtureMain(_ context.Context, params, _ map[string]any) (map[string]any, error) {
	return fixture.Main(params).Map(), nil
}

func fixtureMainSchema(_ context.Context, params, schema map[string]any) (map[string]any, error) {
	return fixture.MainWithSchema(params, schema).Map(), nil
}
