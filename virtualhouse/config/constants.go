package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Colors
	ErrorColor   = 0xE74C3C
	SuccessColor = 0x2ECC71
	InfoColor    = 0x3498DB
	WarningColor = 0xE67E22
	GoldColor    = 0xF1C40F

	EmbedDefaultColor = 0x2B2D31

	// Pagination
	PropertiesPerPage = 5
	MaxAssetButtons   = 10
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second

	// Component-level double-tap suppression
	DebounceCacheSize = 1024
	DebounceWindow    = 750 * time.Millisecond
)

// Economy Constants
const (
	// Work action
	WorkCooldown = 4 * time.Second
	WorkEarnMin  = 50
	WorkEarnMax  = 150

	// Property economics
	GoldLandChance     = 0.01
	RentLevelGrowth    = 1.3
	CollectWear        = 5
	UpgradeCostRate    = 0.5
	RepairCostPerPoint = 10
	SellRefundRate     = 0.75

	// Experience grants
	ActionExpMin      = 50
	ActionExpMax      = 500
	RepairExp         = 10
	SellExp           = 50
	CollectExpDivisor = 1000
)
