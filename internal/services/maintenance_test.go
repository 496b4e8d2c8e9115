package services

import (
	"testing"

	"github.com/keeptrack-dev/keeptrack/internal/apperr"
	"github.com/keeptrack-dev/keeptrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecordValidation(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")
	other := createTestUser(t, database, "other@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	// Asset belonging to someone else reads as absent.
	_, err = records.Create(other.ID, RecordInput{
		AssetID:     asset.ID,
		ServiceType: "Oil Change",
		ServiceDate: "2024-01-10",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = records.Create(owner.ID, RecordInput{AssetID: asset.ID, ServiceType: "  ", ServiceDate: "2024-01-10"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = records.Create(owner.ID, RecordInput{AssetID: asset.ID, ServiceType: "Oil Change"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = records.Create(owner.ID, RecordInput{AssetID: asset.ID, ServiceType: "Oil Change", ServiceDate: "not-a-date"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = records.Create(owner.ID, RecordInput{
		AssetID:             asset.ID,
		ServiceType:         "Oil Change",
		ServiceDate:         "2024-02-10",
		NextMaintenanceDate: strPtr("2024-02-09"),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	created, err := records.Create(owner.ID, RecordInput{
		AssetID:             asset.ID,
		ServiceType:         "Oil Change",
		ServiceDate:         "2024-02-10",
		Description:         strPtr("5W-30 full synthetic"),
		Cost:                floatPtr(89.90),
		PerformedBy:         strPtr("AutoShop"),
		NextMaintenanceDate: strPtr("2024-08-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", created.ServiceDate)
	require.NotNil(t, created.NextMaintenanceDate)
	assert.Equal(t, "2024-08-10", *created.NextMaintenanceDate)
}

func TestCreateRecordNullNextDatePersists(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	created, err := records.Create(owner.ID, RecordInput{
		AssetID:     asset.ID,
		ServiceType: "Inspection",
		ServiceDate: "2024-01-10",
	})
	require.NoError(t, err)
	assert.Nil(t, created.NextMaintenanceDate)

	fetched, err := records.GetByID(created.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.NextMaintenanceDate)
}

func TestRecordTransitiveOwnership(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")
	other := createTestUser(t, database, "other@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	created, err := records.Create(owner.ID, RecordInput{
		AssetID:     asset.ID,
		ServiceType: "Oil Change",
		ServiceDate: "2024-01-10",
	})
	require.NoError(t, err)

	_, errNotOwned := records.GetByID(created.ID, other.ID)
	require.Error(t, errNotOwned)
	assert.True(t, apperr.IsKind(errNotOwned, apperr.KindNotFound))

	_, errAbsent := records.GetByID(99999, other.ID)
	require.Error(t, errAbsent)

	// Absent and not-owned must be indistinguishable.
	assert.Equal(t, errAbsent.Error(), errNotOwned.Error())

	_, err = records.Update(created.ID, other.ID, RecordPatch{Description: strPtr("x")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = records.Delete(created.ID, other.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListByAssetOrdering(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	first, err := records.Create(owner.ID, RecordInput{AssetID: asset.ID, ServiceType: "Oil Change", ServiceDate: "2024-01-10"})
	require.NoError(t, err)
	second, err := records.Create(owner.ID, RecordInput{AssetID: asset.ID, ServiceType: "Brakes", ServiceDate: "2024-03-05"})
	require.NoError(t, err)
	third, err := records.Create(owner.ID, RecordInput{AssetID: asset.ID, ServiceType: "Tires", ServiceDate: "2024-03-05"})
	require.NoError(t, err)

	listed, err := records.ListByAsset(asset.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Most recent service date first; equal dates resolve to the latest
	// insert.
	assert.Equal(t, third.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
	assert.Equal(t, first.ID, listed[2].ID)
}

func TestUpdateRecordEffectiveDateValidation(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	created, err := records.Create(owner.ID, RecordInput{
		AssetID:             asset.ID,
		ServiceType:         "Oil Change",
		ServiceDate:         "2024-01-10",
		NextMaintenanceDate: strPtr("2024-02-01"),
	})
	require.NoError(t, err)

	// Moving the service date past the unchanged next date must fail.
	_, err = records.Update(created.ID, owner.ID, RecordPatch{ServiceDate: strPtr("2024-02-15")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Moving the next date before the unchanged service date must fail.
	_, err = records.Update(created.ID, owner.ID, RecordPatch{
		NextMaintenanceDate: types.OptionalString{Set: true, Value: strPtr("2024-01-05")},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// A consistent pair is fine.
	updated, err := records.Update(created.ID, owner.ID, RecordPatch{ServiceDate: strPtr("2024-01-20")})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", updated.ServiceDate)
	require.NotNil(t, updated.NextMaintenanceDate)
	assert.Equal(t, "2024-02-01", *updated.NextMaintenanceDate)
}

func TestUpdateRecordTriStateNextDate(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	created, err := records.Create(owner.ID, RecordInput{
		AssetID:             asset.ID,
		ServiceType:         "Oil Change",
		ServiceDate:         "2024-01-10",
		NextMaintenanceDate: strPtr("2024-02-01"),
	})
	require.NoError(t, err)

	// Omitted field keeps the stored value.
	updated, err := records.Update(created.ID, owner.ID, RecordPatch{Description: strPtr("routine")})
	require.NoError(t, err)
	require.NotNil(t, updated.NextMaintenanceDate)
	assert.Equal(t, "2024-02-01", *updated.NextMaintenanceDate)

	// Explicit null clears it.
	updated, err = records.Update(created.ID, owner.ID, RecordPatch{
		NextMaintenanceDate: types.OptionalString{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.NextMaintenanceDate)

	// A value sets it again.
	updated, err = records.Update(created.ID, owner.ID, RecordPatch{
		NextMaintenanceDate: types.OptionalString{Set: true, Value: strPtr("2024-06-01")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.NextMaintenanceDate)
	assert.Equal(t, "2024-06-01", *updated.NextMaintenanceDate)
}

func TestUpdateRecordPartialFields(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	created, err := records.Create(owner.ID, RecordInput{
		AssetID:     asset.ID,
		ServiceType: "Oil Change",
		ServiceDate: "2024-01-10",
		PerformedBy: strPtr("AutoShop"),
	})
	require.NoError(t, err)

	updated, err := records.Update(created.ID, owner.ID, RecordPatch{Cost: floatPtr(120.50)})
	require.NoError(t, err)
	require.NotNil(t, updated.Cost)
	assert.Equal(t, 120.50, *updated.Cost)
	assert.Equal(t, "Oil Change", updated.ServiceType)
	assert.Equal(t, "2024-01-10", updated.ServiceDate)
	require.NotNil(t, updated.PerformedBy)
	assert.Equal(t, "AutoShop", *updated.PerformedBy)

	_, err = records.Update(created.ID, owner.ID, RecordPatch{ServiceType: strPtr("  ")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpcomingPanel(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")
	other := createTestUser(t, database, "other@example.com")

	car, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)
	bike, err := assets.Create(owner.ID, AssetInput{Name: "Bicycle"})
	require.NoError(t, err)

	// Two records for the same (asset, service type): only the latest
	// service date counts.
	_, err = records.Create(owner.ID, RecordInput{
		AssetID: car.ID, ServiceType: "Oil Change",
		ServiceDate: "2024-01-01", NextMaintenanceDate: strPtr("2024-03-01"),
	})
	require.NoError(t, err)
	_, err = records.Create(owner.ID, RecordInput{
		AssetID: car.ID, ServiceType: "Oil Change",
		ServiceDate: "2024-02-01", NextMaintenanceDate: strPtr("2024-04-01"),
	})
	require.NoError(t, err)

	// Latest record without a next date drops the pair from the panel.
	_, err = records.Create(owner.ID, RecordInput{
		AssetID: car.ID, ServiceType: "Inspection",
		ServiceDate: "2024-02-15",
	})
	require.NoError(t, err)

	_, err = records.Create(owner.ID, RecordInput{
		AssetID: bike.ID, ServiceType: "Chain",
		ServiceDate: "2024-01-20", NextMaintenanceDate: strPtr("2024-02-20"),
	})
	require.NoError(t, err)

	// Another user's records never show up.
	otherAsset, err := assets.Create(other.ID, AssetInput{Name: "Boat"})
	require.NoError(t, err)
	_, err = records.Create(other.ID, RecordInput{
		AssetID: otherAsset.ID, ServiceType: "Hull",
		ServiceDate: "2024-01-01", NextMaintenanceDate: strPtr("2024-01-15"),
	})
	require.NoError(t, err)

	upcoming, err := records.Upcoming(owner.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)

	// Sorted soonest-first.
	assert.Equal(t, "Bicycle", upcoming[0].AssetName)
	assert.Equal(t, "Chain", upcoming[0].ServiceType)
	require.NotNil(t, upcoming[0].NextMaintenanceDate)
	assert.Equal(t, "2024-02-20", *upcoming[0].NextMaintenanceDate)

	assert.Equal(t, "Car", upcoming[1].AssetName)
	assert.Equal(t, "Oil Change", upcoming[1].ServiceType)
	assert.Equal(t, "2024-02-01", upcoming[1].ServiceDate)
	require.NotNil(t, upcoming[1].NextMaintenanceDate)
	assert.Equal(t, "2024-04-01", *upcoming[1].NextMaintenanceDate)
}

func TestUpcomingPanelTieBreak(t *testing.T) {
	database, assets, records := newTestServices(t)
	owner := createTestUser(t, database, "owner@example.com")

	asset, err := assets.Create(owner.ID, AssetInput{Name: "Car"})
	require.NoError(t, err)

	_, err = records.Create(owner.ID, RecordInput{
		AssetID: asset.ID, ServiceType: "Oil Change",
		ServiceDate: "2024-02-01", NextMaintenanceDate: strPtr("2024-05-01"),
	})
	require.NoError(t, err)

	latest, err := records.Create(owner.ID, RecordInput{
		AssetID: asset.ID, ServiceType: "Oil Change",
		ServiceDate: "2024-02-01", NextMaintenanceDate: strPtr("2024-06-01"),
	})
	require.NoError(t, err)

	// Equal service dates resolve to the highest id, the latest insert.
	upcoming, err := records.Upcoming(owner.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, latest.ID, upcoming[0].ID)
	require.NotNil(t, upcoming[0].NextMaintenanceDate)
	assert.Equal(t, "2024-06-01", *upcoming[0].NextMaintenanceDate)
}
