package powerschool

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"powergrades/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/powerschool")

// ErrLoginFailed means the portal rejected the credentials. It is
// distinct from transport errors so callers can prompt for new
// credentials instead of retrying blindly.
var ErrLoginFailed = fmt.Errorf("invalid login information")

// ErrMissingHTTPS is a configuration error raised when the install URL
// does not use the https scheme.
var ErrMissingHTTPS = fmt.Errorf("https schema missing from install url")

// the literal the portal only renders on a successfully authenticated
// dashboard
const gradesMarker = "Grades and Attendance"

const requestTimeout = time.Second * 2

type Client struct {
	InstallURL string
	Http       *resty.Client
}

// fixInstallURL lowercases the install URL, forces a trailing slash and
// rejects anything that is not https.
func fixInstallURL(installUrl string) (string, error) {
	fixed := strings.ToLower(installUrl)
	if !strings.HasSuffix(fixed, "/") {
		fixed += "/"
	}
	if !strings.HasPrefix(fixed, "https://") {
		return "", ErrMissingHTTPS
	}
	return fixed, nil
}

func NewClient(installUrl string) (*Client, error) {
	fixed, err := fixInstallURL(installUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(fixed)
	client.SetHeader("user-agent", "powergrades/1.1")
	client.SetTimeout(requestTimeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/powerschool/http")

	return &Client{
		InstallURL: fixed,
		Http:       client,
	}, nil
}

type Credentials struct {
	Username string
	Password string
}

// Session is the authentication state of one logged-in user plus the
// course graph scraped from their dashboard. A session is never mutated:
// Login and Refresh return a replacement wholesale, so stale cookies can
// never mix with fresh dashboard data.
type Session struct {
	Username    string
	StudentName string
	Cookies     []*http.Cookie
	Landing     *goquery.Document
	Courses     []Course
}

// performLoginPost fetches the public landing page to decide between the
// legacy challenge handshake and the modern cleartext form, then submits
// the login POST.
func (c *Client) performLoginPost(ctx context.Context, creds Credentials) (*resty.Response, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get("public/home.html")
	if err != nil {
		return nil, fmt.Errorf("fetch login page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse login page: %w", err)
	}

	contextData := doc.Find("input[name=contextData]").AttrOr("value", "")
	pstoken := doc.Find("input[name=pstoken]").AttrOr("value", "")

	if contextData == "" || pstoken == "" {
		// the modern endpoint accepts the raw password over TLS
		return c.Http.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"account":        creds.Username,
				"dbpw":           creds.Password,
				"pw":             creds.Password,
				"ldappassword":   creds.Password,
				"serviceName":    "PS Parent Portal",
				"credentialType": "User Id and Password Credential",
				"pcasServerURL":  "/",
			}).
			Post("guardian/home.html")
	}

	dbpwField, pwField := DeriveLoginFields(contextData, creds.Password)
	return c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"pstoken":        pstoken,
			"contextData":    contextData,
			"dbpw":           dbpwField,
			"serviceName":    "PS Parent Portal",
			"pcasServerURL":  "/",
			"credentialType": "User Id and Password Credential",
			"account":        creds.Username,
			"pw":             pwField,
			"ldappassword":   creds.Password,
		}).
		Post("guardian/home.html")
}

// Login authenticates against the portal and scrapes the resulting
// dashboard into a fresh session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.performLoginPost(ctx, creds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return nil, err
	}
	if !strings.Contains(string(res.Body()), gradesMarker) {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return nil, ErrLoginFailed
	}

	session, err := c.fetchDashboard(ctx, creds.Username, res.Cookies())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch dashboard after login")
		return nil, err
	}
	return session, nil
}

// Refresh revalidates an existing session's cookies against the
// dashboard. When they still work the returned session keeps them and
// carries the freshly scraped page; when they have expired it falls back
// to a full login. Either way the caller swaps sessions atomically.
func (c *Client) Refresh(ctx context.Context, session *Session, creds Credentials) (*Session, error) {
	ctx, span := tracer.Start(ctx, "client:Refresh")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.Cookies).
		Get("guardian/home.html")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch dashboard")
		return nil, err
	}

	if strings.Contains(string(res.Body()), gradesMarker) {
		fresh, err := sessionFromDashboard(ctx, creds.Username, session.Cookies, res.Body())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse refreshed dashboard")
			return nil, err
		}
		return fresh, nil
	}

	// cookies expired, start over
	return c.Login(ctx, creds)
}

func (c *Client) fetchDashboard(ctx context.Context, username string, cookies []*http.Cookie) (*Session, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(cookies).
		Get("guardian/home.html")
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard: %w", err)
	}
	return sessionFromDashboard(ctx, username, cookies, res.Body())
}

func sessionFromDashboard(ctx context.Context, username string, cookies []*http.Cookie, body []byte) (*Session, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse dashboard: %w", err)
	}
	courses, err := parseDashboard(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &Session{
		Username:    username,
		StudentName: parseStudentName(doc),
		Cookies:     cookies,
		Landing:     doc,
		Courses:     courses,
	}, nil
}

// getDocument GETs a portal-relative path with the session's cookies and
// parses the response body.
func (c *Client) getDocument(ctx context.Context, session *Session, path string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.Cookies).
		Get(path)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}
