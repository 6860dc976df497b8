package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"stay/config"
	"stay/infras/postgres"
	"stay/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

func getConnection(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// WithMigrationTable points golang-migrate at a custom version table.
func WithMigrationTable(databaseURL, table string) (string, error) {
	if table == "" {
		return databaseURL, nil
	}

	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	query := parsed.Query()
	query.Set("x-migrations-table", table)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func Runner(config *config.Config, action string) error {
	databaseURL, err := WithMigrationTable(postgres.WriteURL(*config), config.DB.Postgres.MigrationTable)
	if err != nil {
		return err
	}

	return RunWithURL(databaseURL, action)
}

// RunWithURL applies action against databaseURL using the embedded migrations.
func RunWithURL(databaseURL, action string) error {
	mig, err := getConnection(databaseURL)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migration rolled back one step")
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migration applied one step")
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
