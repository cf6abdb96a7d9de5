// Package testutil provides shared test doubles for the console packages.
//
// It offers a testify mock of the admin backend, a manually advanced clock for
// status expiry tests, and a fluent builder for CSV selections.
//
// Example:
//
//	backend := testutil.NewMockBackend(t)
//	backend.On("UploadCostMaster", mock.Anything, mock.Anything).Return(42, nil).Once()
//
//	file := testutil.NewCSV("master.csv").WithRows("a,b", "1,2").Build()
package testutil
