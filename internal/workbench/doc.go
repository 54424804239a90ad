// Package workbench holds the client-side state of a job search session:
// the base result set of the last search, column filters, sorting, paging,
// the multi-row selection and the bulk "create applications" action.
//
// Every transition produces a new State value. Remote calls are issued as
// Bubble Tea commands and come back as typed messages, so the whole life
// cycle runs on the single Update loop of the host program.
package workbench
