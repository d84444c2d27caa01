package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"go-jobpilot-scraper/internal/config"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/time/rate"
)

const (
	connectTimeout = 30 * time.Second
	localEndpoint  = "local chromium"
)

// Launcher acquires browser sessions, either from a remote automation endpoint
// or from a local headless chromium.
type Launcher struct {
	cfg     config.BrowserConfig
	limiter *rate.Limiter
}

func NewLauncher(cfg config.BrowserConfig) *Launcher {
	limit := rate.Inf
	if cfg.SessionsPerMinute > 0 {
		limit = rate.Limit(cfg.SessionsPerMinute / 60)
	}
	return &Launcher{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 2),
	}
}

// Session is one browser connection plus the isolated context created on it.
// It is owned by a single call and must be closed by it.
type Session struct {
	endpoint string
	pw       *playwright.Playwright
	browser  playwright.Browser
	context  playwright.BrowserContext

	abortOnce sync.Once
	abortErr  error
	closeOnce sync.Once
	closeErr  error
}

func (s *Session) Context() playwright.BrowserContext {
	return s.context
}

// Handle is an open session as WithSession drives it.
type Handle interface {
	Context() playwright.BrowserContext
	Abort()
	Close() error
}

// Opener acquires sessions. *Launcher is the real one.
type Opener interface {
	OpenSession(ctx context.Context) (Handle, error)
}

func (l *Launcher) OpenSession(ctx context.Context) (Handle, error) {
	s, err := l.Open(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Open starts the driver, connects (or launches) a browser and prepares a browsing
// context with the configured identity. Every acquisition failure is a *ConnectionError
// and releases whatever was already acquired; running out of time in the session queue
// is a context error instead.
func (l *Launcher) Open(ctx context.Context) (*Session, error) {
	endpoint := l.Endpoint()
	if err := l.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// the queue wait would outlast the deadline
		return nil, fmt.Errorf("wait for session slot at %s: %w: %w", endpoint, context.DeadlineExceeded, err)
	}

	pw, err := playwright.Run(&playwright.RunOptions{
		SkipInstallBrowsers: l.remote(),
	})
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: fmt.Errorf("start playwright driver: %w", err)}
	}

	browser, err := l.acquire(ctx, pw)
	if err != nil {
		_ = pw.Stop()
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}

	bctx, err := browser.NewContext(l.contextOptions())
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, &ConnectionError{Endpoint: endpoint, Err: fmt.Errorf("create browser context: %w", err)}
	}

	if l.cfg.CookiesPath != "" {
		cookies, err := LoadCookies(l.cfg.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies from %s: %v. Continuing.", l.cfg.CookiesPath, err)
		} else if err := bctx.AddCookies(cookies); err != nil {
			log.Printf("⚠️ Could not apply cookies: %v. Continuing.", err)
		} else {
			log.Printf("🍪 Loaded %d cookies", len(cookies))
		}
	}

	return &Session{
		endpoint: endpoint,
		pw:       pw,
		browser:  browser,
		context:  bctx,
	}, nil
}

func (l *Launcher) acquire(ctx context.Context, pw *playwright.Playwright) (playwright.Browser, error) {
	timeout := TimeoutMs(ctx, connectTimeout)

	if !l.remote() {
		browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(l.cfg.Headless),
			Timeout:  timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("launch chromium: %w", err)
		}
		log.Println("🚀 Launched local chromium")
		return browser, nil
	}

	headers := map[string]string{}
	if l.cfg.Token != "" {
		headers["Authorization"] = "Bearer " + l.cfg.Token
	}

	var (
		browser playwright.Browser
		err     error
	)
	if l.cfg.Protocol == config.ProtocolPlaywright {
		browser, err = pw.Chromium.Connect(l.cfg.WSEndpoint, playwright.BrowserTypeConnectOptions{
			Headers: headers,
			Timeout: timeout,
		})
	} else {
		browser, err = pw.Chromium.ConnectOverCDP(l.cfg.WSEndpoint, playwright.BrowserTypeConnectOverCDPOptions{
			Headers: headers,
			Timeout: timeout,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	log.Printf("🌐 Connected to remote browser at %s", l.Endpoint())
	return browser, nil
}

func (l *Launcher) contextOptions() playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(l.cfg.UserAgent),
		Viewport: &playwright.Size{
			Width:  1366,
			Height: 768,
		},
	}
	if l.cfg.Locale != "" {
		opts.Locale = playwright.String(l.cfg.Locale)
		opts.ExtraHttpHeaders = map[string]string{
			"Accept-Language": l.cfg.Locale + ",en;q=0.8",
		}
	}
	return opts
}

func (l *Launcher) remote() bool {
	return l.cfg.WSEndpoint != ""
}

// Endpoint names the browser source for logs and errors, with any query string
// (where services tend to put tokens) stripped.
func (l *Launcher) Endpoint() string {
	if !l.remote() {
		return localEndpoint
	}
	u, err := url.Parse(l.cfg.WSEndpoint)
	if err != nil {
		return "remote endpoint"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// Abort closes the browser so any protocol call blocked on it returns.
func (s *Session) Abort() {
	s.abortOnce.Do(func() {
		if s.browser != nil {
			s.abortErr = s.browser.Close()
		}
	})
}

// Close releases the context, the browser and the driver. Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.context != nil {
			if err := s.context.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
				errs = append(errs, fmt.Errorf("close context: %w", err))
			}
		}
		s.Abort()
		if s.abortErr != nil && !errors.Is(s.abortErr, playwright.ErrTargetClosed) {
			errs = append(errs, fmt.Errorf("close browser: %w", s.abortErr))
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop playwright: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// WithSession runs action inside a freshly acquired session and always releases it,
// whether action returns normally, fails or panics. Cancelling ctx aborts the browser
// so a hung protocol call cannot outlive the deadline.
func WithSession[T any](ctx context.Context, o Opener, action func(context.Context, playwright.BrowserContext) (T, error)) (T, error) {
	var zero T

	s, err := o.OpenSession(ctx)
	if err != nil {
		return zero, err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser session: %v", err)
		}
	}()

	stop := context.AfterFunc(ctx, s.Abort)
	defer stop()

	result, err := action(ctx, s.Context())
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return result, err
}

// TimeoutMs converts limit into a playwright timeout, shortened to whatever is left
// of the ctx deadline.
func TimeoutMs(ctx context.Context, limit time.Duration) *float64 {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < limit {
			limit = left
		}
	}
	if limit < time.Millisecond {
		limit = time.Millisecond
	}
	return playwright.Float(float64(limit.Milliseconds()))
}
