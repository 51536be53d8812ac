package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/coursemanager/internal/app/models"
	appServices "github.com/yigit/coursemanager/internal/app/services"
)

// DefaultDepartments are created on first start
var DefaultDepartments = []string{
	"Information Technology",
	"Business Administration",
}

// CreateDefaultData creates the default departments that don't exist yet.
// Departments go through the department service, so the usual name rules
// apply. Every department is attempted; failures are joined.
func CreateDefaultData(ctx context.Context, departments *appServices.DepartmentService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default departments...")
	var finalErr error

	for _, name := range DefaultDepartments {
		existing, err := departments.FindByName(ctx, name)
		if err != nil {
			lgr.Error().Err(err).Str("department", name).Msg("Error looking up default department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if existing != nil {
			lgr.Debug().Str("department", name).Msg("Default department already exists, skipping")
			continue
		}

		res := departments.Create(ctx, &appModels.Department{Name: name})
		if !res.Success {
			lgr.Error().Str("department", name).Str("code", res.Code).Msg(res.Message)
			finalErr = errors.Join(finalErr, fmt.Errorf("%s: %s", name, res.Message))
			continue
		}
		lgr.Info().Str("department", name).Msg("Default department created")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
