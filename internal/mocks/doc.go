// Package mocks provides centralized mock implementations for testing.
//
// Mocks are built on testify/mock so tests can set expectations per call
// and assert how collaborators were used:
//
//	store := new(mocks.MockItemStore)
//	store.On("FindAllIDs", mock.Anything).Return([]int64{1, 2}, nil)
//	...
//	store.AssertExpectations(t)
package mocks
