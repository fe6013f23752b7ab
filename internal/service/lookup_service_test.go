package service

import (
	"context"
	"testing"

	"github.com/abdobody2040/PharmStockHub/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate_RejectsDuplicateName(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	_, err := svc.Create(context.Background(), dto.CreateLookupRequest{Name: "Samples"})
	require.NoError(t, err)

	// Duplicate check is case-insensitive
	_, err = svc.Create(context.Background(), dto.CreateLookupRequest{Name: "samples"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCategoryUpdate_RenameAndDeactivate(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	created, err := svc.Create(context.Background(), dto.CreateLookupRequest{Name: "Gifts"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateLookupRequest{Name: "Samples"})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)

	// Renaming onto another category's name is rejected
	taken := "Samples"
	_, err = svc.Update(context.Background(), id, dto.UpdateLookupRequest{Name: &taken})
	require.ErrorIs(t, err, ErrInvalidArgument)

	free := "Giveaways"
	updated, err := svc.Update(context.Background(), id, dto.UpdateLookupRequest{Name: &free})
	require.NoError(t, err)
	assert.Equal(t, "Giveaways", updated.Name)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestCategoryOperations_UnknownID(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	name := "x"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateLookupRequest{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Deactivate(context.Background(), uuid.New()), ErrNotFound)
}

func TestSpecialtyCreate_RejectsDuplicateName(t *testing.T) {
	svc := NewSpecialtyService(newStubSpecialtyRepo())

	_, err := svc.Create(context.Background(), dto.CreateLookupRequest{Name: "Cardiology"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateLookupRequest{Name: "CARDIOLOGY"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSpecialtyList(t *testing.T) {
	svc := NewSpecialtyService(newStubSpecialtyRepo())

	for _, name := range []string{"Cardiology", "Oncology"} {
		_, err := svc.Create(context.Background(), dto.CreateLookupRequest{Name: name})
		require.NoError(t, err)
	}
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
