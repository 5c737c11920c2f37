package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	gomail "github.com/emersion/go-message/mail"
)

const defaultAuthTimeout = 3 * time.Second

// Config holds the mailbox credentials and the retrieval filter.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string

	// Folder to poll; INBOX when empty.
	Folder string

	// Sender restricts retrieval to messages FROM this address. Empty
	// disables the filter.
	Sender string

	AuthTimeout time.Duration
}

// Message is one retrieved mailbox message with its body already decoded
// (MIME and quoted-printable handled by the reader).
type Message struct {
	UID     uint32
	Subject string
	Date    time.Time
	Body    string
}

// Client connects to an IMAP mailbox and retrieves unseen messages.
// Retrieval uses a non-peek body fetch, so every returned message is marked
// seen as a side effect and will not be returned again.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = defaultAuthTimeout
	}
	return &Client{cfg: cfg}
}

// connect dials the server over TLS with a bounded timeout, authenticates,
// and returns the connected client. The caller must Logout. The auth
// timeout covers the dial, the TLS handshake and the LOGIN exchange; a
// server that answers the handshake but never answers LOGIN cannot hang a
// poll run.
func (c *Client) connect(ctx context.Context) (*imapclient.Client, error) {
	addr := c.cfg.Host + ":" + c.cfg.Port

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: c.cfg.AuthTimeout},
		Config:    &tls.Config{ServerName: c.cfg.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	client := imapclient.New(conn, nil)

	_ = conn.SetDeadline(time.Now().Add(c.cfg.AuthTimeout))
	if err := client.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("authentication failed for %s: %w", c.cfg.Username, err)
	}
	_ = conn.SetDeadline(time.Time{})

	return client, nil
}

// FetchUnseen connects, selects the configured folder, searches for unseen
// messages matching the sender filter, and fetches their subject, date and
// text body. Messages are returned in mailbox order.
func (c *Client) FetchUnseen(ctx context.Context) ([]Message, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select(c.cfg.Folder, nil).Wait(); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", c.cfg.Folder, err)
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}
	if c.cfg.Sender != "" {
		criteria.Header = []imap.SearchCriteriaHeaderField{
			{Key: "From", Value: c.cfg.Sender},
		}
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	uidSet := imap.UIDSetNum(uids...)

	// Non-peek body section: fetching the body sets \Seen on the server.
	bodySection := &imap.FetchItemBodySection{}

	fetchOpts := &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := client.Fetch(uidSet, fetchOpts)

	var messages []Message
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			continue
		}

		m := Message{UID: uint32(buf.UID)}
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
		}

		if raw := buf.FindBodySection(bodySection); raw != nil {
			m.Body = extractTextBody(raw)
		}

		messages = append(messages, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return messages, fmt.Errorf("fetching messages: %w", err)
	}

	return messages, nil
}

// extractTextBody parses a raw RFC 2822 message and returns its text/plain
// part with transfer encodings (quoted-printable, base64) decoded. When
// only HTML is present the tags are stripped; when MIME parsing fails the
// raw bytes are returned as-is.
func extractTextBody(raw []byte) string {
	mr, err := gomail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}
	defer mr.Close()

	var htmlBody string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain"):
			return string(body)
		case strings.HasPrefix(contentType, "text/html"):
			htmlBody = string(body)
		}
	}

	if htmlBody != "" {
		return stripHTML(htmlBody)
	}
	return string(raw)
}

func stripHTML(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune('\n')
		case !inTag:
			b.WriteRune(r)
		}
	}

	out := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(b.String())

	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}
