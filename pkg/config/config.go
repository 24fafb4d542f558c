package config

const (
	BackendCSV      = "csv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type DB struct {
	Url string `envconfig:"URL" default:"ledger.db"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// Ledger selects where accounts are persisted and when.
type Ledger struct {
	File     string `envconfig:"FILE" default:"accounts.csv"`
	Backend  string `envconfig:"BACKEND" default:"csv"`
	AutoSave bool   `envconfig:"AUTOSAVE" default:"false"`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development"`
	Server *Server `envconfig:"SERVER"`
	Log    *Log    `envconfig:"LOG"`
	DB     *DB     `envconfig:"DATABASE"`
	Ledger *Ledger `envconfig:"LEDGER"`
}
