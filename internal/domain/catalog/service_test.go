// internal/domain/catalog/service_test.go
package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-miniapp/internal/config"
)

type fakeSource struct {
	groups    []MenuGroup
	addOns    []AddOnCategory
	groupsErr error
	addOnsErr error
}

func (f *fakeSource) MenuGroups(ctx context.Context) ([]MenuGroup, error) {
	return f.groups, f.groupsErr
}

func (f *fakeSource) AddOnCategories(ctx context.Context) ([]AddOnCategory, error) {
	return f.addOns, f.addOnsErr
}

func testConfig() *config.Config {
	return &config.Config{
		YTimes: config.YTimesConfig{
			MenuGroupName:   "Меню ( онлайн заказы )",
			RefreshInterval: time.Minute,
		},
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestServiceNotLoadedBeforeFirstRefresh(t *testing.T) {
	svc := NewService(&fakeSource{}, testConfig(), testLogger())

	_, err := svc.Menu()
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = svc.AddOnCatalog()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestServiceRefreshPicksGroupByName(t *testing.T) {
	source := &fakeSource{
		groups: []MenuGroup{
			{GUID: "g1", Name: "Бар"},
			{GUID: "g2", Name: "Меню ( онлайн заказы )", ItemList: []MenuItem{{GUID: "i1", Name: "Латте"}}},
		},
		addOns: []AddOnCategory{{GUID: "cat-1", Name: "Сиропы"}},
	}
	svc := NewService(source, testConfig(), testLogger())

	require.NoError(t, svc.Refresh(context.Background()))

	menu, err := svc.Menu()
	require.NoError(t, err)
	assert.Equal(t, "g2", menu.GUID)
	assert.Len(t, menu.ItemList, 1)

	addOns, err := svc.AddOnCatalog()
	require.NoError(t, err)
	assert.Len(t, addOns, 1)
}

func TestServiceRefreshKeepsPreviousMenuWhenGroupMissing(t *testing.T) {
	source := &fakeSource{
		groups: []MenuGroup{{GUID: "g2", Name: "Меню ( онлайн заказы )"}},
		addOns: []AddOnCategory{},
	}
	svc := NewService(source, testConfig(), testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	// The POS renamed or dropped the group; the stale menu stays served.
	source.groups = []MenuGroup{{GUID: "g3", Name: "Другая группа"}}
	require.NoError(t, svc.Refresh(context.Background()))

	menu, err := svc.Menu()
	require.NoError(t, err)
	assert.Equal(t, "g2", menu.GUID)
}

func TestServiceRefreshPropagatesSourceErrors(t *testing.T) {
	source := &fakeSource{groupsErr: errors.New("network down")}
	svc := NewService(source, testConfig(), testLogger())

	err := svc.Refresh(context.Background())
	assert.Error(t, err)

	_, err = svc.Menu()
	assert.ErrorIs(t, err, ErrNotLoaded)
}
