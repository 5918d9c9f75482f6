package deps

import (
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/appdeck/internal/launcher"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/scheduler"
	"github.com/MrSnakeDoc/appdeck/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Store        *store.Store       // App record store
	Launcher     *launcher.Launcher // Start-command shim (always set, may be disabled)
	ProbeTimeout time.Duration      // Reachability probe timeout
	SkipTLSProbe bool               // Accept self-signed certificates when probing
	SortLocale   language.Tag       // Collation for name sorts

	RedisClient      *redis.Client               // Redis client connection (nil unless redis backend)
	Homepage         *scheduler.HomepageImporter // Homepage importer (nil if not configured)
	ReloadTrigger    chan struct{}               // Channel to trigger a homepage import (nil if not configured)
	ImportRateBurst  int                         // Bulk import limiter burst
	ImportRatePerMin int                         // Bulk import limiter refill
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
