// Package testutil provides fixtures shared by devops-cli tests.
//
// Environment isolates every directory devops-cli reads or writes (config,
// cache, bin and state) inside t.TempDir() through the DEVOPS_CLI_* and XDG
// environment variables, and gives tests a throwaway project root:
//
//	env := testutil.NewEnvironment(t)
//	env.WriteFile("infra/main.tf", "")
//
// The archive helpers build release artifacts in memory and ServeFiles
// publishes them over httptest, so install and formula code can be exercised
// end to end without network access.
package testutil
