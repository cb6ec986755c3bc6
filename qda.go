// Package qda is the persistence and consistency core for coding text
// documents with typed statements and a shared entity dictionary. GUI
// collaborators construct a Client from a connection profile and call the
// service methods; storage failures surface as sentinel returns, never as
// panics or escaped errors.
package qda

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/openqda/qda/internal/cache"
	"github.com/openqda/qda/internal/compress"
	"github.com/openqda/qda/internal/jobs"
	"github.com/openqda/qda/internal/service"
	"github.com/openqda/qda/internal/session"
)

type Client struct {
	session  *session.Session
	executor *jobs.TaskExecutor

	Coders     *service.CoderService
	Documents  *service.DocumentService
	Statements *service.StatementService
	Entities   *service.EntityService
	Types      *service.TypeService
}

// NewClient connects to the profile's data source with the default codec
// and an in-memory listing cache.
func NewClient(p session.Profile) (*Client, error) {
	return NewClientWith(p, compress.NewNop(), cache.NewMemory())
}

// NewClientWith connects with an explicit text codec and cache. When the
// profile carries a refresh interval, a background poller republishes
// coder changes made by other clients.
func NewClientWith(p session.Profile, codec compress.Compress, kv cache.KV) (*Client, error) {
	sess := session.New()
	if err := sess.Connect(p); err != nil {
		return nil, err
	}

	c := &Client{
		session:    sess,
		Coders:     service.NewCoderService(sess),
		Documents:  service.NewDocumentService(codec, sess, kv),
		Statements: service.NewStatementService(sess),
		Entities:   service.NewEntityService(sess),
		Types:      service.NewTypeService(sess),
	}

	if p.RefreshInterval > 0 {
		refresh := jobs.NewCoderRefresh(sess, sess.Bus(), p.RefreshInterval)
		c.executor = jobs.NewTaskExecutor([]jobs.CronJob{refresh})
		c.executor.Run()
	}

	return c, nil
}

// Session exposes the connection lifecycle: coder switching and the
// connection/coder change notifications.
func (c *Client) Session() *session.Session {
	return c.session
}

// CreateSchema builds all tables and seed rows in one transaction, with
// the admin password stored as a one-way hash. Reports success.
func (c *Client) CreateSchema(ctx context.Context, adminClearPassword string) bool {
	hash, err := service.HashPassword(adminClearPassword)
	if err != nil {
		logrus.Errorf("Error hashing admin password: %v", err)
		return false
	}

	if err := c.session.Store().CreateSchema(ctx, hash); err != nil {
		logrus.Errorf("Error creating schema: %v", err)
		return false
	}

	return true
}

func (c *Client) Close() error {
	if c.executor != nil {
		c.executor.Stop()
	}
	return c.session.Close()
}
