package main

// Export formats
const (
	FORMAT_XLSX = "xlsx"
	FORMAT_CSV  = "csv"
)

// File paths and network
const (
	DEFAULT_RESULT_FILE_PATH = "Ativos.xlsx"
	DEFAULT_LISTEN_ADDRESS   = ":8080"
	DOTENV_FILE_PATH         = ".env"
)

// Environment variables
const (
	ENV_LISTEN_ADDRESS = "AM_ASSET_VIEW_LISTEN_ADDRESS"
	ENV_LOG_LEVEL      = "AM_ASSET_VIEW_LOG_LEVEL"
	ENV_LANGUAGE       = "AM_ASSET_VIEW_LANGUAGE"
)
