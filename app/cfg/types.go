package cfg

type Cfg struct {
	// HTTP server configuration
	Port string

	// Source configuration
	SourcesDir    string
	PrimarySource string
	CacheTTL      int // seconds
	HTTPTimeout   int // seconds

	// Background scheduler configuration
	WorkerCount       int
	SchedulerInterval int // seconds, 0 disables the scheduler
	SyncSource        string

	// Calendar configuration
	CalendarID      string
	CredentialsFile string
	TokenFile       string
	Authorize       bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
