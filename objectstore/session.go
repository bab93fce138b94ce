package objectstore

import (
	"fmt"
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/uuid"

	"github.com/gitflix/gitflix/objectstore/internal/gitrepo"
)

// Session groups the resources that need explicit lifetime management:
// the repository handle, the blob cache, and the single guard mutex
// serializing repository access between the decode path and the
// prefetcher. It replaces the process-scope globals the reference
// implementation used for the same job.
type Session struct {
	ID uuid.UUID

	repo  *gitrepo.Repo
	cache *BlobCache

	guard sync.Mutex
}

// Open opens (or initializes) the bare repository at path and wires it
// to a BlobCache of the given capacity.
func Open(path string, cacheCapacity int) (*Session, error) {
	repo, err := gitrepo.Open(path)
	if err != nil {
		return nil, &StoreError{Reason: "open", Err: err}
	}
	return &Session{
		ID:    uuid.New(),
		repo:  repo,
		cache: NewBlobCache(cacheCapacity),
	}, nil
}

// Close releases the session's cache. The underlying go-git repository
// handle holds no OS resources beyond open file descriptors it manages
// internally, so there is nothing else to release explicitly.
func (s *Session) Close() error {
	s.guard.Lock()
	defer s.guard.Unlock()
	s.cache = nil
	return nil
}

// Cache exposes the session's BlobCache so a Prefetcher (or telemetry)
// can be constructed around the same instance the decode path reads.
func (s *Session) Cache() *BlobCache { return s.cache }

// WalkChain returns the ordered commit id sequence from root to tip,
// oldest first, an ancestry walk from tip to root, then
// reversed".
func (s *Session) WalkChain() ([]plumbing.Hash, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	ids, err := s.repo.WalkChain()
	if err != nil {
		return nil, &StoreError{Reason: "walk chain", Err: err}
	}
	return ids, nil
}

// GetBlob returns the bytes of the frame.bin blob for commit id,
// consulting the BlobCache first and inserting on miss.
func (s *Session) GetBlob(id plumbing.Hash) ([]byte, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}

	s.guard.Lock()
	data, err := s.repo.ReadFrameBlob(id)
	s.guard.Unlock()
	if err != nil {
		return nil, &StoreError{CommitID: id.String(), Reason: "read blob", Err: err}
	}

	s.cache.Put(id, data)
	return data, nil
}

// WriteFrame writes payload as a blob, wraps it in a commit whose parent
// is parent (plumbing.ZeroHash for the root commit), and returns the new
// commit's id. The commit message matches the reference format:
// "Frame NNNNNN (raw|delta, B bytes)".
func (s *Session) WriteFrame(payload []byte, parent plumbing.Hash, frameIndex uint32, mode string) (plumbing.Hash, error) {
	message := fmt.Sprintf("Frame %06d (%s, %d bytes)", frameIndex, mode, len(payload))

	s.guard.Lock()
	id, err := s.repo.WriteFrame(payload, parent, message)
	s.guard.Unlock()
	if err != nil {
		return plumbing.ZeroHash, &StoreError{Reason: "write frame", Err: err}
	}
	return id, nil
}

// Head returns the current tip of the chain, or plumbing.ZeroHash if the
// repository has no commits.
func (s *Session) Head() (plumbing.Hash, error) {
	s.guard.Lock()
	defer s.guard.Unlock()
	h, err := s.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, &StoreError{Reason: "head", Err: err}
	}
	return h, nil
}
