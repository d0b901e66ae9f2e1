package internal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iksnae/chat-session/internal/api"
)

// TabEnvVar overrides the tab key used to scope the stored session
const TabEnvVar = "CHAT_SESSION_TAB"

const pidTabPrefix = "pid:"

const schema = `CREATE TABLE IF NOT EXISTS tab_sessions (
	tab_key    TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	context_id TEXT NOT NULL DEFAULT '',
	owner_start TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

const transcriptSchema = `CREATE TABLE IF NOT EXISTS tab_transcripts (
	tab_key    TEXT PRIMARY KEY,
	context_id TEXT NOT NULL DEFAULT '',
	entries    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// CurrentTabKey identifies the terminal tab this process runs in: the value of
// CHAT_SESSION_TAB when set, otherwise the parent shell's pid.
func CurrentTabKey() string {
	if key := strings.TrimSpace(os.Getenv(TabEnvVar)); key != "" {
		return key
	}
	return pidTabPrefix + strconv.Itoa(os.Getppid())
}

// SQLiteStore keeps one session per terminal tab in a SQLite file. Rows owned
// by tabs whose shell has exited are pruned on open, so a token never outlives
// its tab and is never visible from another one.
//
// A pid-keyed row also records when the owning shell started. A row whose
// pid has been reused by a newer process is treated as belonging to a closed
// tab.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	tabKey    string
	owner     string
	alive     func(pid int) bool
	startTime func(pid int) string
	now       func() time.Time
}

// OpenSQLiteStore opens (creating if needed) the store at path for the given tab
func OpenSQLiteStore(path, tabKey string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}
	// Requests running as background commands share one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Path: path, Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}
	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", schema, transcriptSchema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, &StoreError{Path: path, Op: "open", Err: err}
		}
	}

	if err := addOwnerColumn(db); err != nil {
		db.Close()
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}

	s := &SQLiteStore{
		db:        db,
		path:      path,
		tabKey:    tabKey,
		alive:     processAlive,
		startTime: processStartTime,
		now:       time.Now,
	}
	s.owner = s.ownerOf(tabKey)
	if n, err := s.Prune(); err != nil {
		LogWarn("Failed to prune closed tabs: %v", err)
	} else if n > 0 {
		LogDebug("Pruned %d session(s) of closed tabs", n)
	}
	return s, nil
}

// addOwnerColumn upgrades databases created before owner_start existed
func addOwnerColumn(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(tab_sessions)")
	if err != nil {
		return err
	}
	found := false
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			defaultValue     sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultValue, &pk); err != nil {
			rows.Close()
			return err
		}
		if name == "owner_start" {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if found {
		return nil
	}
	_, err = db.Exec("ALTER TABLE tab_sessions ADD COLUMN owner_start TEXT NOT NULL DEFAULT ''")
	return err
}

// ownerOf returns the start time of the process a pid tab key names, or ""
// for named tabs and when the platform cannot tell
func (s *SQLiteStore) ownerOf(key string) string {
	if !strings.HasPrefix(key, pidTabPrefix) {
		return ""
	}
	pid, err := strconv.Atoi(strings.TrimPrefix(key, pidTabPrefix))
	if err != nil {
		return ""
	}
	return s.startTime(pid)
}

// sameOwner reports whether a row recorded for owner still belongs to the
// process now holding the pid. Unknown start times on either side match.
func sameOwner(recorded, current string) bool {
	return recorded == "" || current == "" || recorded == current
}

// Path returns the database file location
func (s *SQLiteStore) Path() string {
	return s.path
}

// TabKey returns the tab this store is scoped to
func (s *SQLiteStore) TabKey() string {
	return s.tabKey
}

// Get returns the session stored for this tab. Read failures are logged and
// reported as absence.
func (s *SQLiteStore) Get() (Session, bool) {
	var (
		sess  Session
		owner string
	)
	err := s.db.QueryRow("SELECT token, context_id, owner_start FROM tab_sessions WHERE tab_key = ?", s.tabKey).
		Scan(&sess.Token, &sess.ContextID, &owner)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, false
	}
	if err != nil {
		LogWarn("%v", &StoreError{Path: s.path, Op: "get", Err: err})
		return Session{}, false
	}
	if !sameOwner(owner, s.owner) {
		LogDebug("Dropping session of an earlier tab that used %s", s.tabKey)
		s.Clear()
		return Session{}, false
	}
	return sess, sess.Token != ""
}

// Set stores the session for this tab. An empty token is treated as Clear.
func (s *SQLiteStore) Set(sess Session) {
	if sess.Token == "" {
		s.Clear()
		return
	}
	now := s.now().Unix()
	_, err := s.db.Exec(`INSERT INTO tab_sessions (tab_key, token, context_id, owner_start, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(tab_key) DO UPDATE SET
			token = excluded.token,
			context_id = excluded.context_id,
			owner_start = excluded.owner_start,
			updated_at = excluded.updated_at`,
		s.tabKey, sess.Token, sess.ContextID, s.owner, now, now)
	if err != nil {
		LogError("%v", &StoreError{Path: s.path, Op: "set", Err: err})
	}
}

// Clear removes the session stored for this tab, and its transcript
func (s *SQLiteStore) Clear() {
	if err := s.deleteTab(s.tabKey); err != nil {
		LogError("%v", &StoreError{Path: s.path, Op: "clear", Err: err})
	}
}

func (s *SQLiteStore) deleteTab(key string) error {
	for _, table := range []string{"tab_sessions", "tab_transcripts"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE tab_key = ?", key); err != nil {
			return err
		}
	}
	return nil
}

// SaveTranscript remembers the conversation last shown in this tab so that
// a later process can export it. The server stays the owner of the history.
func (s *SQLiteStore) SaveTranscript(contextID string, entries []api.ConversationEntry) error {
	if entries == nil {
		entries = []api.ConversationEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return &StoreError{Path: s.path, Op: "save transcript", Err: err}
	}
	_, err = s.db.Exec(`INSERT INTO tab_transcripts (tab_key, context_id, entries, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tab_key) DO UPDATE SET
			context_id = excluded.context_id,
			entries = excluded.entries,
			updated_at = excluded.updated_at`,
		s.tabKey, contextID, string(data), s.now().Unix())
	if err != nil {
		return &StoreError{Path: s.path, Op: "save transcript", Err: err}
	}
	return nil
}

// LoadTranscript returns the conversation saved for this tab. A tab with no
// saved transcript yields an empty list.
func (s *SQLiteStore) LoadTranscript() (string, []api.ConversationEntry, error) {
	var contextID, data string
	err := s.db.QueryRow("SELECT context_id, entries FROM tab_transcripts WHERE tab_key = ?", s.tabKey).
		Scan(&contextID, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", []api.ConversationEntry{}, nil
	}
	if err != nil {
		return "", nil, &StoreError{Path: s.path, Op: "load transcript", Err: err}
	}
	entries := []api.ConversationEntry{}
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return "", nil, &StoreError{Path: s.path, Op: "load transcript", Err: err}
	}
	return contextID, entries, nil
}

// Prune deletes sessions whose owning tab no longer exists: the pid is gone
// or now belongs to a process started later. Only pid-keyed rows are
// considered; explicit CHAT_SESSION_TAB keys are left alone.
func (s *SQLiteStore) Prune() (int, error) {
	rows, err := s.db.Query("SELECT tab_key, owner_start FROM tab_sessions WHERE tab_key LIKE ?", pidTabPrefix+"%")
	if err != nil {
		return 0, &StoreError{Path: s.path, Op: "prune", Err: err}
	}

	var stale []string
	for rows.Next() {
		var key, owner string
		if err := rows.Scan(&key, &owner); err != nil {
			rows.Close()
			return 0, &StoreError{Path: s.path, Op: "prune", Err: err}
		}
		if key == s.tabKey {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimPrefix(key, pidTabPrefix))
		if err != nil || !s.alive(pid) || !sameOwner(owner, s.startTime(pid)) {
			stale = append(stale, key)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, &StoreError{Path: s.path, Op: "prune", Err: err}
	}
	rows.Close()

	for _, key := range stale {
		if err := s.deleteTab(key); err != nil {
			return 0, &StoreError{Path: s.path, Op: "prune", Err: err}
		}
	}
	return len(stale), nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
