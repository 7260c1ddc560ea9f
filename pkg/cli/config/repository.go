package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/repository/firestore"
	"github.com/availiq/availiq/pkg/repository/memory"
	"github.com/availiq/availiq/pkg/repository/sheets"
	"github.com/availiq/availiq/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend         string
	projectID       string
	databaseID      string
	spreadsheetID   string
	credentialsFile string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (sheets, firestore or memory)",
			Category:    "Repository",
			Value:       "sheets",
			Sources:     cli.EnvVars("AVAILIQ_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("AVAILIQ_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("AVAILIQ_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "sheets-spreadsheet-id",
			Usage:       "Google Sheets spreadsheet ID (required when using sheets backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("AVAILIQ_SHEETS_SPREADSHEET_ID"),
			Destination: &r.spreadsheetID,
		},
		&cli.StringFlag{
			Name:        "sheets-credentials-file",
			Usage:       "Path to Google service account credentials JSON (default: ambient credentials)",
			Category:    "Repository",
			Sources:     cli.EnvVars("AVAILIQ_SHEETS_CREDENTIALS_FILE"),
			Destination: &r.credentialsFile,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close() on the returned
// repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "sheets":
		if r.spreadsheetID == "" {
			return nil, goerr.New("sheets-spreadsheet-id is required when using sheets backend")
		}
		repo, err := sheets.New(ctx, r.spreadsheetID, r.credentialsFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sheets repository")
		}
		logging.Default().Info("Using Google Sheets repository",
			"spreadsheet_id", r.spreadsheetID,
		)
		return repo, nil

	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
