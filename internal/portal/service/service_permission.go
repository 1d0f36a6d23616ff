// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/repo"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/safe"
	"github.com/go-arcade/portal/pkg/trace"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// notice and row message ids
const (
	MsgPermissionFetchFailed  = "permission.fetch_failed"
	MsgPermissionUpdateFailed = "permission.update_failed"
	MsgPermissionUpdated      = "permission.updated"
	MsgPermissionNoMenu       = "permission.no_menu"
)

// PermissionTexts default wording of the editor messages
var PermissionTexts = map[string]string{
	MsgPermissionFetchFailed:  "Gagal mengambil data hak akses",
	MsgPermissionUpdateFailed: "Gagal memperbarui hak akses",
	MsgPermissionUpdated:      "Hak akses berhasil diperbarui",
	MsgPermissionNoMenu:       "Tidak ada data menu",
}

const (
	maxNotices     = 20
	subscriberSize = 8
)

type Notice struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	MenuID  int       `json:"menuId,omitempty"`
	At      time.Time `json:"at"`
}

// EditorRow is one rendered line of the matrix: a group header, a menu
// or the single empty row.
type EditorRow struct {
	Kind      string                `json:"kind"`
	GroupID   int                   `json:"groupId,omitempty"`
	GroupName string                `json:"groupName,omitempty"`
	Menu      *model.MenuPermission `json:"menu,omitempty"`
	HasAccess bool                  `json:"hasAccess,omitempty"`
	Updating  bool                  `json:"updating,omitempty"`
	Message   string                `json:"message,omitempty"`
}

const (
	RowGroup = "group"
	RowMenu  = "menu"
	RowEmpty = "empty"
)

type EditorView struct {
	SessionID string                  `json:"sessionId"`
	RoleID    int                     `json:"roleId"`
	AppID     int                     `json:"appId"`
	Groups    []model.PermissionGroup `json:"groups"`
	Rows      []EditorRow             `json:"rows"`
	Updating  []int                   `json:"updating"`
	Notices   []Notice                `json:"notices"`
}

type editorSession struct {
	mu          sync.Mutex
	id          string
	owner       string
	roleID      int
	appID       int
	groups      []model.PermissionGroup
	updating    map[int]struct{}
	notices     []Notice
	subscribers map[chan Notice]struct{}
	detached    bool
}

func newEditorSession(owner string, roleID, appID int) *editorSession {
	return &editorSession{
		id:          uuid.NewString(),
		owner:       owner,
		roleID:      roleID,
		appID:       appID,
		groups:      []model.PermissionGroup{},
		updating:    make(map[int]struct{}),
		subscribers: make(map[chan Notice]struct{}),
	}
}

// PermissionEditor keeps one optimistic matrix per open editor. An
// editor is only visible to the login session that opened it.
type PermissionEditor struct {
	permissionRepo repo.IPermissionRepository
	directory      *DirectoryService
	sessions       *expirable.LRU[string, *editorSession]
	includeRoleID  bool
	metrics        *metrics.Portal
	now            func() time.Time
	wg             sync.WaitGroup
}

func NewPermissionEditor(permissionRepo repo.IPermissionRepository, directory *DirectoryService, conf config.PermissionConfig, m *metrics.Portal) *PermissionEditor {
	size := conf.MaxSessions
	if size <= 0 {
		size = 1024
	}
	ttl := conf.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &PermissionEditor{
		permissionRepo: permissionRepo,
		directory:      directory,
		// the callback runs under the LRU lock, it must not call back into it
		sessions: expirable.NewLRU[string, *editorSession](size, func(_ string, s *editorSession) {
			s.detach()
		}, ttl),
		includeRoleID: conf.IncludeRoleId,
		metrics:       m,
		now:           time.Now,
	}
}

// Open fetches the matrix of a role and application. A failed fetch
// still opens the editor, empty and with a failure notice.
func (e *PermissionEditor) Open(ctx context.Context, roleID, appID int) (*EditorView, error) {
	groups, err := e.permissionRepo.GetMatrix(ctx, roleID, appID)
	if errors.Is(err, client.ErrUnauthorized) {
		return nil, err
	}

	s := newEditorSession(scopeOf(ctx), roleID, appID)
	if err != nil {
		log.WithContext(ctx).Warnw("fetch permission matrix", "roleId", roleID, "appId", appID, "error", err)
		s.notifyLocked(e.notice(NoticeError, MsgPermissionFetchFailed, 0))
	} else if groups != nil {
		s.groups = groups
	}

	e.sessions.Add(s.id, s)
	e.metrics.SetEditorSessions(e.sessions.Len())

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(), nil
}

func (e *PermissionEditor) View(ctx context.Context, sessionID string) (*EditorView, error) {
	s, err := e.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(), nil
}

// Close discards the editor. Writes still in flight settle on the
// detached session.
func (e *PermissionEditor) Close(ctx context.Context, sessionID string) error {
	if _, err := e.session(ctx, sessionID); err != nil {
		return err
	}
	if !e.sessions.Remove(sessionID) {
		return ErrSessionNotFound
	}
	e.metrics.SetEditorSessions(e.sessions.Len())
	return nil
}

// ToggleMenuAccess grants every permission kind or revokes them all
func (e *PermissionEditor) ToggleMenuAccess(ctx context.Context, sessionID string, groupID, menuID int, enabled bool) (*EditorView, error) {
	var perms model.PermissionSet
	if enabled {
		perms = model.FullAccess
	}
	return e.mutate(ctx, sessionID, groupID, menuID, perms, false)
}

// SetMenuPermissions replaces the set of a menu that already has access
func (e *PermissionEditor) SetMenuPermissions(ctx context.Context, sessionID string, groupID, menuID int, perms model.PermissionSet) (*EditorView, error) {
	return e.mutate(ctx, sessionID, groupID, menuID, perms, true)
}

// mutate applies perms optimistically and persists them in the
// background. A rollback restores the whole matrix as it was when this
// write started, which also undoes changes confirmed on other menus in
// the meantime.
func (e *PermissionEditor) mutate(ctx context.Context, sessionID string, groupID, menuID int, perms model.PermissionSet, requireAccess bool) (*EditorView, error) {
	s, err := e.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, busy := s.updating[menuID]; busy {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, ErrMenuBusy
	}
	menu := s.findLocked(groupID, menuID)
	if menu == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrMenuNotFound, menuID)
	}
	if requireAccess && !menu.Permissions.HasAccess() {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, ErrNoAccess
	}

	snapshot := model.CloneGroups(s.groups)
	menu.Permissions = perms
	s.updating[menuID] = struct{}{}

	update := model.PermissionUpdate{MenuDetailID: menuID, Permission: perms}
	if e.includeRoleID {
		roleID := s.roleID
		update.RoleID = &roleID
	}
	view := s.viewLocked()
	s.mu.Unlock()

	persistCtx := trace.Detach(ctx)
	e.wg.Add(1)
	safe.Go(func() {
		defer e.wg.Done()
		e.persist(persistCtx, s, update, snapshot)
	})
	return view, nil
}

var errPersistAborted = errors.New("permission write aborted")

func (e *PermissionEditor) persist(ctx context.Context, s *editorSession, update model.PermissionUpdate, snapshot []model.PermissionGroup) {
	err := errPersistAborted
	defer func() {
		e.settle(ctx, s, update, snapshot, err)
		if errors.Is(err, client.ErrUnauthorized) {
			e.expire(ctx)
		}
	}()
	err = e.permissionRepo.UpdateMenuPermission(ctx, update)
}

// expire drops the cached directory of a login session the upstream
// rejected while a write was in the background.
func (e *PermissionEditor) expire(ctx context.Context) {
	if e.directory != nil {
		e.directory.ClearSession(ctx)
	}
}

func (e *PermissionEditor) settle(ctx context.Context, s *editorSession, update model.PermissionUpdate, snapshot []model.PermissionGroup, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.updating, update.MenuDetailID)

	if err != nil {
		log.WithContext(ctx).Warnw("persist menu permission, rolling back",
			"session", s.id, "menuId", update.MenuDetailID, "permission", update.Permission.String(), "error", err)
		s.groups = snapshot
		s.notifyLocked(e.notice(NoticeError, MsgPermissionUpdateFailed, update.MenuDetailID))
		e.metrics.PermissionWrite("rollback")
		return
	}
	s.notifyLocked(e.notice(NoticeSuccess, MsgPermissionUpdated, update.MenuDetailID))
	e.metrics.PermissionWrite("ok")
}

// Subscribe streams the notices of a session until cancel is called or
// the session goes away.
func (e *PermissionEditor) Subscribe(ctx context.Context, sessionID string) (<-chan Notice, func(), error) {
	s, err := e.session(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan Notice, subscriberSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		close(ch)
		return ch, func() {}, nil
	}
	s.subscribers[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[ch]; ok {
				delete(s.subscribers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel, nil
}

// Drain waits for every in-flight write to settle
func (e *PermissionEditor) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// session looks an editor up for the login session of ctx. Editors of
// other login sessions are reported as missing.
func (e *PermissionEditor) session(ctx context.Context, id string) (*editorSession, error) {
	s, ok := e.sessions.Get(id)
	if !ok || s.owner != scopeOf(ctx) {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (e *PermissionEditor) notice(kind, id string, menuID int) Notice {
	return Notice{ID: id, Type: kind, Message: PermissionTexts[id], MenuID: menuID, At: e.now()}
}

// findLocked looks the menu up in groupID, or in every group when
// groupID is zero.
func (s *editorSession) findLocked(groupID, menuID int) *model.MenuPermission {
	for gi := range s.groups {
		g := &s.groups[gi]
		if groupID != 0 && g.ID != groupID {
			continue
		}
		for mi := range g.Menus {
			if g.Menus[mi].ID == menuID {
				return &g.Menus[mi]
			}
		}
	}
	return nil
}

func (s *editorSession) notifyLocked(n Notice) {
	s.notices = append(s.notices, n)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
	for ch := range s.subscribers {
		select {
		case ch <- n:
		default:
		}
	}
}

func (s *editorSession) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan Notice]struct{})
}

func (s *editorSession) viewLocked() *EditorView {
	updating := make([]int, 0, len(s.updating))
	for id := range s.updating {
		updating = append(updating, id)
	}
	sort.Ints(updating)

	groups := model.CloneGroups(s.groups)
	return &EditorView{
		SessionID: s.id,
		RoleID:    s.roleID,
		AppID:     s.appID,
		Groups:    groups,
		Rows:      renderRows(groups, s.updating),
		Updating:  updating,
		Notices:   append([]Notice(nil), s.notices...),
	}
}

// renderRows lists each group header followed by its menus. No groups
// gives the single empty row.
func renderRows(groups []model.PermissionGroup, updating map[int]struct{}) []EditorRow {
	if len(groups) == 0 {
		return []EditorRow{{Kind: RowEmpty, Message: PermissionTexts[MsgPermissionNoMenu]}}
	}
	rows := make([]EditorRow, 0, len(groups)*4)
	for gi := range groups {
		g := &groups[gi]
		rows = append(rows, EditorRow{Kind: RowGroup, GroupID: g.ID, GroupName: g.GroupName})
		for mi := range g.Menus {
			m := &g.Menus[mi]
			_, busy := updating[m.ID]
			rows = append(rows, EditorRow{
				Kind:      RowMenu,
				GroupID:   g.ID,
				Menu:      m,
				HasAccess: m.Permissions.HasAccess(),
				Updating:  busy,
			})
		}
	}
	return rows
}
