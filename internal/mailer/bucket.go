package mailer

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/authkit/authkit-server/internal/model"
)

const bucketPrefix = "outbox"

// BucketSender writes messages into object storage instead of sending them.
// It backs MAIL_DRIVER=bucket for development setups without an SMTP relay.
type BucketSender struct {
	storage model.Storage
	now     func() time.Time
}

func NewBucketSender(storage model.Storage) *BucketSender {
	return &BucketSender{storage: storage, now: time.Now}
}

func (s *BucketSender) Send(ctx context.Context, msg Message) error {
	key := path.Join(bucketPrefix,
		fmt.Sprintf("%s-%s-%s.html", s.now().UTC().Format("20060102T150405.000000000Z"), msg.Kind, msg.To))

	body := "<!-- Subject: " + msg.Subject + " -->\n" + msg.HTML
	if err := s.storage.Upload(ctx, key, strings.NewReader(body), int64(len(body)), "text/html; charset=utf-8"); err != nil {
		return fmt.Errorf("failed to store mail: %w", err)
	}

	return nil
}
