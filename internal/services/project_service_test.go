package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crafterscloset/internal/models"
	"crafterscloset/internal/repositories"
	"crafterscloset/internal/services"
)

type projectFixture struct {
	projects  *services.ProjectService
	inventory *services.InventoryService
}

func newProjectFixture() projectFixture {
	supplyRepo := repositories.NewMemorySupplyRepository()
	items := repositories.NewMemoryItemRepository(supplyRepo)
	supplies := services.NewSupplyService(supplyRepo)
	return projectFixture{
		projects:  services.NewProjectService(repositories.NewMemoryProjectRepository(supplyRepo), items, supplies),
		inventory: services.NewInventoryService(items, supplies, nil),
	}
}

func quiltInput() models.ProjectInput {
	return models.ProjectInput{
		Title:       "red patchwork quilt",
		Description: "  Scrappy and warm ",
		Supplies: []models.ProjectSupplyInput{
			{SupplyInput: models.SupplyInput{SupplyType: "Fabric", Color: "Red", Units: "yards"}, Quantity: 6},
			{SupplyInput: models.SupplyInput{SupplyType: "Thread", Brand: "Gutermann", Color: "Red", Units: "spool"}, Quantity: 5},
		},
	}
}

func TestProjectService_CreateProject(t *testing.T) {
	f := newProjectFixture()

	project, err := f.projects.CreateProject(1, quiltInput())
	require.NoError(t, err)
	assert.Equal(t, "Red Patchwork Quilt", project.Title)
	assert.Equal(t, "Scrappy and warm", models.StringValue(project.Description))
	assert.Nil(t, project.ImageURL)

	mine, err := f.projects.ListUserProjects(1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.projects.ListUserProjects(2)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestProjectService_CreateProjectValidation(t *testing.T) {
	f := newProjectFixture()

	_, err := f.projects.CreateProject(1, models.ProjectInput{Title: "   "})
	assert.ErrorIs(t, err, models.ErrValidation)

	in := quiltInput()
	in.Supplies[1].Quantity = 0
	_, err = f.projects.CreateProject(1, in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "supplies[1].quantity", verr.Field)

	all, err := f.projects.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProjectService_BuyList(t *testing.T) {
	f := newProjectFixture()
	project, err := f.projects.CreateProject(1, quiltInput())
	require.NoError(t, err)

	// User 2 owns 10 spools of thread and no fabric
	_, _, err = f.inventory.AddSupply(2, models.AddSupplyInput{
		SupplyInput: models.SupplyInput{SupplyType: "thread", Brand: "gutermann", Color: "red", Units: "spool"},
		Quantity:    "10",
	})
	require.NoError(t, err)

	t.Run("Owner", func(t *testing.T) {
		list, err := f.projects.BuyList(project.ID, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)

		fabric, thread := list[0], list[1]
		assert.Equal(t, "Fabric", fabric.SupplyType)
		assert.Equal(t, 6, fabric.QuantityRequired)
		assert.Equal(t, 0, fabric.QuantityOwned)
		assert.Equal(t, 6, fabric.QuantityToBuy)

		assert.Equal(t, "Thread", thread.SupplyType)
		assert.Equal(t, 10, thread.QuantityOwned)
		assert.Equal(t, 0, thread.QuantityToBuy)
	})

	t.Run("Anonymous", func(t *testing.T) {
		list, err := f.projects.BuyList(project.ID, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, entry := range list {
			assert.Equal(t, 0, entry.QuantityOwned)
			assert.Equal(t, entry.QuantityRequired, entry.QuantityToBuy)
		}
	})

	t.Run("RepeatedCallsAreReadOnly", func(t *testing.T) {
		first, err := f.projects.BuyList(project.ID, 2)
		require.NoError(t, err)
		second, err := f.projects.BuyList(project.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		owned, err := f.inventory.ListInventory(2, models.FilterCriteria{})
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, 10, owned[0].Quantity)
	})

	t.Run("UnknownProject", func(t *testing.T) {
		_, err := f.projects.BuyList(999, 2)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestProjectService_BuyListSkipsInventoryLookupWhenAnonymous(t *testing.T) {
	mockProjects := new(MockProjectRepository)
	mockItems := new(MockItemRepository)
	service := services.NewProjectService(mockProjects, mockItems, services.NewSupplyService(new(MockSupplyRepository)))

	mockProjects.On("GetByID", uint(4)).Return(&models.Project{ID: 4, Title: "Garland"}, nil)
	mockProjects.On("ListRequirements", uint(4)).Return([]models.RequirementRow{
		{SupplyDetailID: 8, SupplyType: "Paper", Units: "sheet", QuantityRequired: 12},
	}, nil)
	mockItems.On("QuantitiesBySupply", uint(6), []uint{8}).Return(map[uint]int{8: 5}, nil).Once()

	anonymous, err := service.BuyList(4, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, anonymous[0].QuantityToBuy)
	mockItems.AssertNotCalled(t, "QuantitiesBySupply", mock.Anything, mock.Anything)

	owner, err := service.BuyList(4, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, owner[0].QuantityOwned)
	assert.Equal(t, 7, owner[0].QuantityToBuy)
	mockItems.AssertExpectations(t)
}

func TestProjectService_SearchProjects(t *testing.T) {
	mockProjects := new(MockProjectRepository)
	service := services.NewProjectService(mockProjects, new(MockItemRepository), services.NewSupplyService(new(MockSupplyRepository)))

	mockProjects.On("Search", "red").Return([]models.ProjectSearchResult{
		{ID: 3, Title: "Red Scarf"},
		{ID: 1, Title: "Red Quilt"},
		{ID: 3, Title: "Red Scarf"},
		{ID: 2, Title: "Red Quilt", Description: strPtr("Baby size")},
	}, nil).Once()

	results, err := service.SearchProjects("  red ")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, uint(1), results[0].ID)
	assert.Equal(t, uint(2), results[1].ID)
	assert.Equal(t, uint(3), results[2].ID)
	mockProjects.AssertExpectations(t)
}
