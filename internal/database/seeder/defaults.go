package seeder

// Defaults returns the seeders in dependency order. Demo users are included only when withDemoUsers is set.
func Defaults(c Catalog, withDemoUsers bool) []Seeder {
	out := []Seeder{
		TaxonomySeeder{Catalog: c},
		ProjectsSeeder{Catalog: c},
	}
	if withDemoUsers {
		out = append(out, UsersSeeder{Catalog: c})
	}
	return out
}
