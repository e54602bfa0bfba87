package app

import "monorel/internal/types"

type InitRequest struct {
	Root    string
	Message string
}

type InitResult struct {
	Message  string
	Branches int
}

type AddChangeRequest struct {
	Root      string
	Branch    string
	Package   string
	ReleaseAs string
	Deploy    []string
}

type AddChangeResult struct {
	Branch string
	Added  bool
}

type RemoveChangeRequest struct {
	Root   string
	Branch string
}

type RemoveChangeResult struct {
	Branch  string
	Removed bool
}

type StatusRequest struct {
	Root   string
	Branch string
}

type StatusResult struct {
	Message string
	Changes types.ChangesData
}

type PlanRequest struct {
	Root      string
	Branch    string
	OutputDir string
	SyncDeps  bool
}

type PlanResult struct {
	Branch     string
	Plan       types.BumpPlan
	OutputPath string
}
