// Package gitrepo is the single concrete object-store backend: a thin
// wrapper over go-git's plumbing layer that knows how to write a blob,
// a single-entry tree, and a commit with one parent, and how to walk a
// linear commit chain from tip to root.
//
// The reference implementation's two coexisting backends (a subprocess
// `git` and a linked libgit2) collapse into this one abstraction with
// one concrete backend. It is deliberately unaware of frame formats or
// compression —
// its whole job is "blob in, tree in, commit out" and "commit id in,
// blob out".
package gitrepo

import (
	"io"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

// frameBlobName is the fixed tree-entry name required for
// every commit: the blob holding a serialized frame record.
const frameBlobName = "frame.bin"

var branchRef = plumbing.NewBranchReferenceName("main")

// Repo owns one on-disk bare repository and exposes exactly the
// primitives the object-store adapter needs.
type Repo struct {
	repo *git.Repository
	path string
}

// Open opens the bare repository at path, initializing one if none
// exists yet. It never touches a working tree: GitFlix repositories
// are bare, since nothing ever needs to check the video out as files.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpen(path)
	if err == nil {
		return &Repo{repo: repo, path: path}, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, errors.Wrapf(err, "gitrepo: open %s", path)
	}

	repo, err = git.PlainInit(path, true)
	if err != nil {
		return nil, errors.Wrapf(err, "gitrepo: init %s", path)
	}
	return &Repo{repo: repo, path: path}, nil
}

// Head returns the commit hash refs/heads/main currently points at, or
// plumbing.ZeroHash if the repository has no commits yet.
func (r *Repo) Head() (plumbing.Hash, error) {
	ref, err := r.repo.Reference(branchRef, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, nil
		}
		return plumbing.ZeroHash, errors.Wrap(err, "gitrepo: resolve head")
	}
	return ref.Hash(), nil
}

// WalkChain returns every commit id reachable from refs/heads/main,
// following all parent links in committer-time order, then reversed so
// the result is ordered oldest (root) first.
func (r *Repo) WalkChain() ([]plumbing.Hash, error) {
	tip, err := r.Head()
	if err != nil {
		return nil, err
	}
	if tip.IsZero() {
		return nil, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{From: tip, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrap(err, "gitrepo: log")
	}
	defer iter.Close()

	var newestFirst []plumbing.Hash
	err = iter.ForEach(func(c *object.Commit) error {
		newestFirst = append(newestFirst, c.Hash)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "gitrepo: walk log")
	}

	oldestFirst := make([]plumbing.Hash, len(newestFirst))
	for i, h := range newestFirst {
		oldestFirst[len(newestFirst)-1-i] = h
	}
	return oldestFirst, nil
}

// ReadFrameBlob returns the bytes of the frame.bin blob under commit
// id's tree.
func (r *Repo) ReadFrameBlob(id plumbing.Hash) ([]byte, error) {
	commit, err := r.repo.CommitObject(id)
	if err != nil {
		return nil, errors.Wrapf(err, "gitrepo: commit %s not found", id)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.Wrapf(err, "gitrepo: tree for commit %s not found", id)
	}
	entry, err := tree.File(frameBlobName)
	if err != nil {
		return nil, errors.Wrapf(err, "gitrepo: %s missing from commit %s", frameBlobName, id)
	}
	rc, err := entry.Reader()
	if err != nil {
		return nil, errors.Wrapf(err, "gitrepo: open blob for commit %s", id)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "gitrepo: read blob for commit %s", id)
	}
	return data, nil
}

// WriteFrame writes payload as a blob, wraps it in a single-entry tree
// named frame.bin, commits it with the given parent (plumbing.ZeroHash
// for the root commit), advances refs/heads/main to the new commit, and
// returns its hash.
func (r *Repo) WriteFrame(payload []byte, parent plumbing.Hash, message string) (plumbing.Hash, error) {
	blobHash, err := r.writeBlob(payload)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	treeHash, err := r.writeTree(blobHash)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	var parents []plumbing.Hash
	if !parent.IsZero() {
		parents = []plumbing.Hash{parent}
	}

	commitHash, err := r.writeCommit(treeHash, parents, message)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := r.advanceHead(commitHash); err != nil {
		return plumbing.ZeroHash, err
	}
	return commitHash, nil
}

func (r *Repo) writeBlob(payload []byte) (plumbing.Hash, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, "gitrepo: blob writer")
	}
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return plumbing.ZeroHash, errors.Wrap(err, "gitrepo: write blob")
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, "gitrepo: close blob writer")
	}
	return r.repo.Storer.SetEncodedObject(obj)
}

func (r *Repo) writeTree(blobHash plumbing.Hash) (plumbing.Hash, error) {
	tree := object.Tree{
		Entries: []object.TreeEntry{
			{Name: frameBlobName, Mode: filemode.Regular, Hash: blobHash},
		},
	}
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, "gitrepo: encode tree")
	}
	return r.repo.Storer.SetEncodedObject(obj)
}

func (r *Repo) writeCommit(treeHash plumbing.Hash, parents []plumbing.Hash, message string) (plumbing.Hash, error) {
	now := time.Now()
	sig := object.Signature{Name: "gitflix-encoder", Email: "gitflix@localhost", When: now}
	commit := object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.CommitObject)
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, "gitrepo: encode commit")
	}
	return r.repo.Storer.SetEncodedObject(obj)
}

func (r *Repo) advanceHead(commitHash plumbing.Hash) error {
	ref := plumbing.NewHashReference(branchRef, commitHash)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return errors.Wrapf(err, "gitrepo: advance %s", branchRef)
	}
	if _, err := r.repo.Reference(plumbing.HEAD, false); errors.Is(err, plumbing.ErrReferenceNotFound) {
		symbolic := plumbing.NewSymbolicReference(plumbing.HEAD, branchRef)
		if err := r.repo.Storer.SetReference(symbolic); err != nil {
			return errors.Wrap(err, "gitrepo: set HEAD")
		}
	}
	return nil
}
