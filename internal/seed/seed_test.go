package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/yigit/coursemanager/internal/app/models"
	appRepos "github.com/yigit/coursemanager/internal/app/repositories"
	appServices "github.com/yigit/coursemanager/internal/app/services"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	departments := appServices.NewDepartmentService(appServices.NewUnitOfWork(appRepos.NewMemoryStore(), zerolog.Nop()))

	require.NoError(t, CreateDefaultData(ctx, departments, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, departments, zerolog.Nop()))

	all, err := departments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Information Technology", all[0].Name)
	assert.Equal(t, "Business Administration", all[1].Name)
}

func TestCreateDefaultDataKeepsExistingNames(t *testing.T) {
	ctx := context.Background()
	departments := appServices.NewDepartmentService(appServices.NewUnitOfWork(appRepos.NewMemoryStore(), zerolog.Nop()))
	require.True(t, departments.Create(ctx, &appModels.Department{Name: "information technology"}).Success)

	require.NoError(t, CreateDefaultData(ctx, departments, zerolog.Nop()))

	all, err := departments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "information technology", all[0].Name)
}
