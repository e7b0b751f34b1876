package core

import "prism/pkg/domain"

type (
	Startup         = domain.Startup
	StartupFields   = domain.StartupFields
	FundingStage    = domain.FundingStage
	Status          = domain.Status
	ValidationError = domain.ValidationError
	SnapshotSlot    = domain.SnapshotSlot
)
