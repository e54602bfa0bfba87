package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gofrs/flock"

	"monorel/internal/ports"
	"monorel/internal/shared"
	"monorel/internal/types"
)

const (
	ledgerFileName       = ".changes.json"
	ledgerLockFileName   = ".changes.json.lock"
	defaultLedgerMessage = "chore(release): release new version"
)

// LedgerFileAdapter persists the change ledger as a .changes.json
// document in the workspace root. Mutations take an advisory file lock
// around the whole read-modify-write sequence and persist through a
// temp-file rename, so concurrent callers never observe a partial
// document and a failed persist leaves the previous content intact.
type LedgerFileAdapter struct {
	Root string
}

func NewLedgerFileAdapter(root string) LedgerFileAdapter {
	return LedgerFileAdapter{Root: root}
}

func (a LedgerFileAdapter) Initialize(message string) (types.LedgerDocument, error) {
	var doc types.LedgerDocument
	err := a.withLock(func() error {
		existing, found, err := a.readDocument()
		if err != nil {
			return err
		}
		if found {
			doc = existing
			return nil
		}
		if message == "" {
			message = defaultLedgerMessage
		}
		doc = types.LedgerDocument{
			Message: message,
			Changes: types.ChangesData{},
		}
		return a.persist(doc)
	})
	if err != nil {
		return types.LedgerDocument{}, err
	}
	return doc, nil
}

func (a LedgerFileAdapter) AddChange(change types.Change, deploy []string, branch string) (bool, error) {
	if branch == "" {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("branch must not be empty")
	}
	if change.Package == "" {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("change package must not be empty")
	}
	if change.ReleaseAs.IsZero() {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("change bump kind must be set")
	}

	added := false
	err := a.withLock(func() error {
		doc, _, err := a.readDocument()
		if err != nil {
			return err
		}
		if doc.Changes == nil {
			doc.Changes = types.ChangesData{}
		}
		set := doc.Changes[branch]
		for _, existing := range set.Pkgs {
			if existing.Equal(change) {
				return nil
			}
		}
		set.Pkgs = append(set.Pkgs, change)
		set.Deploy = shared.UniqueStrings(append(set.Deploy, deploy...))
		doc.Changes[branch] = set
		if err := a.persist(doc); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (a LedgerFileAdapter) RemoveChange(branch string) (bool, error) {
	removed := false
	err := a.withLock(func() error {
		doc, found, err := a.readDocument()
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if _, ok := doc.Changes[branch]; !ok {
			return nil
		}
		delete(doc.Changes, branch)
		if err := a.persist(doc); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ChangeExists matches on branch and package together; a branch with
// pending changes for other packages is not a match.
func (a LedgerFileAdapter) ChangeExists(branch string, pkg string) (bool, error) {
	doc, found, err := a.readDocument()
	if err != nil || !found {
		return false, err
	}
	set, ok := doc.Changes[branch]
	if !ok {
		return false, nil
	}
	for _, change := range set.Pkgs {
		if change.Package == pkg {
			return true, nil
		}
	}
	return false, nil
}

func (a LedgerFileAdapter) Changes() (types.ChangesData, error) {
	doc, found, err := a.readDocument()
	if err != nil {
		return nil, err
	}
	if !found || doc.Changes == nil {
		return types.ChangesData{}, nil
	}
	return doc.Changes, nil
}

func (a LedgerFileAdapter) ChangesByBranch(branch string) (types.BranchChangeSet, bool, error) {
	doc, found, err := a.readDocument()
	if err != nil || !found {
		return types.BranchChangeSet{}, false, err
	}
	set, ok := doc.Changes[branch]
	return set, ok, nil
}

func (a LedgerFileAdapter) ChangeByPackage(pkg string, branch string) (types.Change, bool, error) {
	set, ok, err := a.ChangesByBranch(branch)
	if err != nil || !ok {
		return types.Change{}, false, err
	}
	for _, change := range set.Pkgs {
		if change.Package == pkg {
			return change, true, nil
		}
	}
	return types.Change{}, false, nil
}

// Snapshot returns the full persisted document and whether one exists.
func (a LedgerFileAdapter) Snapshot() (types.LedgerDocument, bool, error) {
	return a.readDocument()
}

func (a LedgerFileAdapter) path() string {
	return filepath.Join(a.Root, ledgerFileName)
}

func (a LedgerFileAdapter) withLock(fn func() error) error {
	if a.Root == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("ledger root is empty")
	}
	lock := flock.New(filepath.Join(a.Root, ledgerLockFileName))
	if err := lock.Lock(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to acquire ledger lock").
			WithCause(err)
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

func (a LedgerFileAdapter) readDocument() (types.LedgerDocument, bool, error) {
	data, err := os.ReadFile(a.path())
	if errors.Is(err, fs.ErrNotExist) {
		return types.LedgerDocument{Changes: types.ChangesData{}}, false, nil
	}
	if err != nil {
		return types.LedgerDocument{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read change ledger").
			WithCause(err)
	}
	var doc types.LedgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.LedgerDocument{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse change ledger").
			WithCause(err)
	}
	if doc.Changes == nil {
		doc.Changes = types.ChangesData{}
	}
	return doc, true, nil
}

// persist writes the document to a sibling temp file and renames it
// over the ledger path. On any failure the previous file is untouched.
func (a LedgerFileAdapter) persist(doc types.LedgerDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode change ledger").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(a.Root, ".changes-*.json.tmp")
	if err != nil {
		return storageError("failed to stage change ledger", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return storageError("failed to write change ledger", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return storageError("failed to write change ledger", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return storageError("failed to write change ledger", err)
	}
	if err := os.Rename(tmpName, a.path()); err != nil {
		_ = os.Remove(tmpName)
		return storageError("failed to persist change ledger", err)
	}
	return nil
}

func storageError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(cause)
}

var _ ports.LedgerPort = LedgerFileAdapter{}
