package showcase

import (
	"context"
	"net/http"

	"github.com/goliatone/go-showcase/internal/catalog"
	snapshotcmd "github.com/goliatone/go-showcase/internal/commands/snapshot"
	"github.com/goliatone/go-showcase/internal/di"
	"github.com/goliatone/go-showcase/internal/listing"
	"github.com/goliatone/go-showcase/internal/listview"
	"github.com/goliatone/go-showcase/internal/modal"
	"github.com/goliatone/go-showcase/internal/team"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// Item exports the normalized showcase item.
type Item = catalog.Item

// Catalog exports the normalized item collections of one snapshot.
type Catalog = catalog.Catalog

// Member exports a resolved team member.
type Member = team.Member

// FilterState exports the listing filter state.
type FilterState = listing.State

// View exports a filtered listing with composed rows.
type View = listing.View

// Session exports the list view session.
type Session = *listview.Session

// Modal exports the modal-route synchronizer.
type Modal = *modal.Synchronizer

// RefreshCommand exports the snapshot refresh command message.
type RefreshCommand = snapshotcmd.RefreshSnapshotCommand

// Module represents the top level showcase runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a showcase module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Session returns the list view session.
func (m *Module) Session() Session {
	return m.container.Session()
}

// Load fetches the snapshot and waits for it to be applied.
func (m *Module) Load(ctx context.Context) {
	m.container.Session().Load(ctx)
}

// Modal builds a synchronizer bound to nav.
func (m *Module) Modal(nav interfaces.Navigator, opts ...modal.Option) Modal {
	return m.container.NewModal(nav, opts...)
}

// Refresh invalidates the snapshot cache and optionally reloads the session.
func (m *Module) Refresh(ctx context.Context, cmd RefreshCommand) error {
	return m.container.RefreshHandler().Execute(ctx, cmd)
}

// Handler returns the HTTP handler serving the showcase JSON API.
func (m *Module) Handler() http.Handler {
	return m.container.SiteAPI().Handler()
}

// Close unmounts the session and releases held resources.
func (m *Module) Close() error {
	return m.container.Close()
}
