package repositories_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crafterscloset/internal/database"
	"crafterscloset/internal/models"
	"crafterscloset/internal/repositories"
	"crafterscloset/internal/services"
)

type stores struct {
	users    repositories.UserRepository
	supplies repositories.SupplyRepository
	items    repositories.ItemRepository
	projects repositories.ProjectRepository
}

func gormStores(t *testing.T) stores {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return stores{
		users:    repositories.NewGORMUserRepository(db),
		supplies: repositories.NewGORMSupplyRepository(db),
		items:    repositories.NewGORMItemRepository(db),
		projects: repositories.NewGORMProjectRepository(db),
	}
}

func memoryStores(*testing.T) stores {
	supplies := repositories.NewMemorySupplyRepository()
	return stores{
		users:    repositories.NewMemoryUserRepository(),
		supplies: supplies,
		items:    repositories.NewMemoryItemRepository(supplies),
		projects: repositories.NewMemoryProjectRepository(supplies),
	}
}

// eachBackend runs fn against the GORM/SQLite and in-memory implementations.
func eachBackend(t *testing.T, fn func(t *testing.T, s stores)) {
	for name, open := range map[string]func(*testing.T) stores{
		"gorm":   gormStores,
		"memory": memoryStores,
	} {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func newUser(t *testing.T, s stores, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, s.users.Create(user))
	require.NotZero(t, user.ID)
	return user
}

func newSupply(t *testing.T, s stores, supplyType, brand, color, units string) *models.SupplyDetail {
	t.Helper()
	sd := &models.SupplyDetail{
		SupplyType: supplyType,
		Brand:      models.NullableString(brand),
		Color:      models.NullableString(color),
		Units:      units,
	}
	require.NoError(t, s.supplies.Create(sd))
	require.NotZero(t, sd.ID)
	return sd
}

func TestUserRepository(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "quilter")

		found, err := s.users.GetByUsername("quilter")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		byID, err := s.users.GetByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "quilter", byID.Username)

		// Same email with another username is allowed
		other := &models.User{Username: "quilter2", Email: "quilter@example.com", Password: "hash"}
		assert.NoError(t, s.users.Create(other))

		dup := &models.User{Username: "quilter", Email: "x@example.com", Password: "hash"}
		assert.ErrorIs(t, s.users.Create(dup), models.ErrConflict)

		_, err = s.users.GetByUsername("nobody")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = s.users.GetByID(999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestSupplyRepository_FindMatching(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		paint := newSupply(t, s, "Acrylic Paint", "Apple Barrel", "Bright Magenta", "bottle")
		fabric := newSupply(t, s, "Fabric", "", "Red", "yards")

		t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
			got, err := s.supplies.FindMatching(models.SupplyMatch{SupplyType: "acrylic", Brand: "APPLE", Color: "magenta"}, 2)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, paint.ID, got[0].ID)
		})

		t.Run("NoMatch", func(t *testing.T) {
			got, err := s.supplies.FindMatching(models.SupplyMatch{SupplyType: "acrylic paint", Brand: "Delta"}, 2)
			require.NoError(t, err)
			assert.Empty(t, got)
		})

		t.Run("NullBrandNeverMatchesConstrainedBrand", func(t *testing.T) {
			got, err := s.supplies.FindMatching(models.SupplyMatch{SupplyType: "fabric", Brand: "Kona"}, 2)
			require.NoError(t, err)
			assert.Empty(t, got)

			got, err = s.supplies.FindMatching(models.SupplyMatch{SupplyType: "fabric"}, 2)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, fabric.ID, got[0].ID)
		})

		t.Run("WildcardsMatchLiterally", func(t *testing.T) {
			got, err := s.supplies.FindMatching(models.SupplyMatch{SupplyType: "%"}, 2)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	})
}

func TestSupplyRepository_NonASCIICaseFolding(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "fileuse")
		wool := newSupply(t, s, "Laine Mérinos", "Drops", "Écru", "pelote")
		_, err := s.items.AddQuantity(user.ID, wool.ID, 4)
		require.NoError(t, err)

		t.Run("FindMatching", func(t *testing.T) {
			got, err := s.supplies.FindMatching(models.SupplyMatch{SupplyType: "laine mérinos", Color: "écru"}, 2)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, wool.ID, got[0].ID)
		})

		t.Run("GetOrCreateReusesRow", func(t *testing.T) {
			svc := services.NewSupplyService(s.supplies)
			sd, err := svc.GetOrCreateSupply(models.SupplyInput{SupplyType: "LAINE MÉRINOS", Brand: "drops", Color: "ÉCRU", Units: "pelote"})
			require.NoError(t, err)
			assert.Equal(t, wool.ID, sd.ID)

			all, err := s.supplies.GetAll()
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})

		t.Run("InventoryFilterAndSearch", func(t *testing.T) {
			color := "ÉCRU"
			byColor, err := s.items.ListByUser(user.ID, models.FilterCriteria{Color: &color})
			require.NoError(t, err)
			require.Len(t, byColor, 1)

			searched, err := s.items.ListByUser(user.ID, models.FilterCriteria{Search: "MÉRINOS"})
			require.NoError(t, err)
			require.Len(t, searched, 1)
			assert.Equal(t, wool.ID, searched[0].SupplyDetailID)
		})

		t.Run("ProjectSearch", func(t *testing.T) {
			shawl := &models.Project{UserID: user.ID, Title: "Châle d'Été"}
			require.NoError(t, s.projects.Create(shawl, []models.ProjectSupply{{SupplyDetailID: wool.ID, Quantity: 3}}))

			byTitle, err := s.projects.Search("ÉTÉ")
			require.NoError(t, err)
			require.Len(t, byTitle, 1)
			assert.Equal(t, shawl.ID, byTitle[0].ID)

			bySupply, err := s.projects.Search("écru")
			require.NoError(t, err)
			require.Len(t, bySupply, 1)
			assert.Equal(t, shawl.ID, bySupply[0].ID)
		})
	})
}

func TestSupplyRepository_LowestIDFirst(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		first := newSupply(t, s, "Yarn", "Lion Brand", "Navy", "skein")
		second := newSupply(t, s, "Yarn", "Red Heart", "Navy", "skein")
		newSupply(t, s, "Yarn", "Caron", "Navy", "skein")

		got, err := s.supplies.FindMatching(models.SupplyMatch{SupplyType: "yarn", Color: "navy"}, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)

		all, err := s.supplies.GetAll()
		require.NoError(t, err)
		assert.Len(t, all, 3)

		_, err = s.supplies.GetByID(999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestItemRepository_AddQuantity(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "knitter")
		other := newUser(t, s, "sewer")
		yarn := newSupply(t, s, "Yarn", "Lion Brand", "Navy", "skein")

		item, err := s.items.AddQuantity(user.ID, yarn.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)

		again, err := s.items.AddQuantity(user.ID, yarn.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, item.ID, again.ID)
		assert.Equal(t, 5, again.Quantity)

		theirs, err := s.items.AddQuantity(other.ID, yarn.ID, 1)
		require.NoError(t, err)
		assert.NotEqual(t, item.ID, theirs.ID)

		stored, err := s.items.GetByUserAndSupply(user.ID, yarn.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Quantity)
	})
}

func TestItemRepository_ConcurrentAddQuantity(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "batcher")
		beads := newSupply(t, s, "Seed Beads", "Miyuki", "Silver Lined Gold", "tube")

		const adds = 20
		var wg sync.WaitGroup
		errs := make(chan error, adds)
		for i := 0; i < adds; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.items.AddQuantity(user.ID, beads.ID, 1)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := s.items.GetByUserAndSupply(user.ID, beads.ID)
		require.NoError(t, err)
		assert.Equal(t, adds, stored.Quantity)

		rows, err := s.items.ListByUser(user.ID, models.FilterCriteria{})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestItemRepository_UpdateAndDelete(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "painter")
		paint := newSupply(t, s, "Acrylic Paint", "Apple Barrel", "Bright Magenta", "bottle")
		item, err := s.items.AddQuantity(user.ID, paint.ID, 4)
		require.NoError(t, err)

		require.NoError(t, s.items.UpdateQuantity(item.ID, 9))
		stored, err := s.items.GetByID(item.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, stored.Quantity)

		require.NoError(t, s.items.Delete(item.ID))
		_, err = s.items.GetByID(item.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = s.items.GetByUserAndSupply(user.ID, paint.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)

		assert.ErrorIs(t, s.items.Delete(item.ID), models.ErrNotFound)
		assert.ErrorIs(t, s.items.UpdateQuantity(item.ID, 1), models.ErrNotFound)
	})
}

func TestItemRepository_ListByUser(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "crafter")
		other := newUser(t, s, "neighbor")
		paint := newSupply(t, s, "Acrylic Paint", "Apple Barrel", "Bright Magenta", "bottle")
		tape := newSupply(t, s, "Washi Tape", "", "Gold", "roll")
		_, err := s.items.AddQuantity(user.ID, paint.ID, 2)
		require.NoError(t, err)
		_, err = s.items.AddQuantity(user.ID, tape.ID, 6)
		require.NoError(t, err)
		_, err = s.items.AddQuantity(other.ID, paint.ID, 1)
		require.NoError(t, err)

		all, err := s.items.ListByUser(user.ID, models.FilterCriteria{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Acrylic Paint", all[0].SupplyType)
		assert.Equal(t, 2, all[0].Quantity)
		assert.Equal(t, "Gold", models.StringValue(all[1].Color))

		paintType := "acrylic paint"
		byType, err := s.items.ListByUser(user.ID, models.FilterCriteria{SupplyType: &paintType})
		require.NoError(t, err)
		require.Len(t, byType, 1)
		assert.Equal(t, paint.ID, byType[0].SupplyDetailID)

		searched, err := s.items.ListByUser(user.ID, models.FilterCriteria{Search: "GOLD"})
		require.NoError(t, err)
		require.Len(t, searched, 1)
		assert.Equal(t, tape.ID, searched[0].SupplyDetailID)

		owned, err := s.items.QuantitiesBySupply(user.ID, []uint{paint.ID, tape.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, map[uint]int{paint.ID: 2, tape.ID: 6}, owned)
	})
}

func TestProjectRepository(t *testing.T) {
	eachBackend(t, func(t *testing.T, s stores) {
		user := newUser(t, s, "maker")
		fabric := newSupply(t, s, "Fabric", "", "Red", "yards")
		paint := newSupply(t, s, "Acrylic Paint", "Apple Barrel", "Bright Magenta", "bottle")

		quilt := &models.Project{UserID: user.ID, Title: "Red Quilt", Description: models.NullableString("A warm quilt")}
		require.NoError(t, s.projects.Create(quilt, []models.ProjectSupply{
			{SupplyDetailID: paint.ID, Quantity: 1},
			{SupplyDetailID: fabric.ID, Quantity: 6},
		}))
		require.NotZero(t, quilt.ID)

		bare := &models.Project{UserID: user.ID, Title: "Paper Garland"}
		require.NoError(t, s.projects.Create(bare, nil))

		t.Run("Requirements", func(t *testing.T) {
			reqs, err := s.projects.ListRequirements(quilt.ID)
			require.NoError(t, err)
			require.Len(t, reqs, 2)
			assert.Equal(t, fabric.ID, reqs[0].SupplyDetailID)
			assert.Equal(t, 6, reqs[0].QuantityRequired)
			assert.Equal(t, "yards", reqs[0].Units)
			assert.Equal(t, paint.ID, reqs[1].SupplyDetailID)

			none, err := s.projects.ListRequirements(bare.ID)
			require.NoError(t, err)
			assert.Empty(t, none)
		})

		t.Run("Lookup", func(t *testing.T) {
			got, err := s.projects.GetByID(quilt.ID)
			require.NoError(t, err)
			assert.Equal(t, "Red Quilt", got.Title)

			_, err = s.projects.GetByID(999)
			assert.ErrorIs(t, err, models.ErrNotFound)

			all, err := s.projects.GetAll()
			require.NoError(t, err)
			assert.Len(t, all, 2)

			mine, err := s.projects.ListByUser(user.ID)
			require.NoError(t, err)
			assert.Len(t, mine, 2)
		})

		t.Run("Search", func(t *testing.T) {
			byTitle, err := s.projects.Search("garland")
			require.NoError(t, err)
			require.Len(t, byTitle, 1)
			assert.Equal(t, bare.ID, byTitle[0].ID)

			bySupply, err := s.projects.Search("magenta")
			require.NoError(t, err)
			require.Len(t, bySupply, 1)
			assert.Equal(t, quilt.ID, bySupply[0].ID)

			// Title and fabric color both match; the project appears once
			byColor, err := s.projects.Search("red")
			require.NoError(t, err)
			assert.Len(t, byColor, 1)

			none, err := s.projects.Search("origami")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	})
}
