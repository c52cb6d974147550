package go_cubrid

import (
	"fmt"
	"strconv"
	"strings"
)

// ConnectionString is the parsed form of a CUBRID connection URL:
//
//	CUBRID:host:port:database:user:password:?prop=value&prop=value
//
// The user and password segments may be left empty and supplied separately.
// Recognized properties: altHosts (comma-separated host:port pairs for broker
// failover), rcTime (reconnect interval seconds), charset, autocommit.
type ConnectionString struct {
	Host          string
	Port          int
	Database      string
	User          string
	Password      string
	AltHosts      []string
	ReconnectTime int
	Charset       string
	Autocommit    bool
}

const defaultCharset = "utf8"

// ParseConnectionString validates and splits a connection URL. The property
// segment is optional; unknown properties fail rather than being ignored.
func ParseConnectionString(dsn string) (*ConnectionString, error) {
	cs := &ConnectionString{
		Charset:    defaultCharset,
		Autocommit: true,
	}
	base := dsn
	props := ""
	if idx := strings.Index(dsn, "?"); idx >= 0 {
		props = dsn[idx+1:]
		base = strings.TrimSuffix(dsn[:idx], ":")
	}
	parts := strings.Split(base, ":")
	if len(parts) < 4 || !strings.EqualFold(parts[0], "cubrid") {
		return nil, fmt.Errorf("invalid connection url: %q", dsn)
	}
	cs.Host = parts[1]
	port, err := strconv.Atoi(parts[2])
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid port in connection url: %q", parts[2])
	}
	cs.Port = port
	cs.Database = parts[3]
	if cs.Host == "" || cs.Database == "" {
		return nil, fmt.Errorf("connection url needs host and database: %q", dsn)
	}
	if len(parts) > 4 {
		cs.User = parts[4]
	}
	if len(parts) > 5 {
		cs.Password = parts[5]
	}
	if props != "" {
		if err := cs.parseProperties(props); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

func (cs *ConnectionString) parseProperties(props string) error {
	for _, pair := range strings.Split(props, "&") {
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("malformed property %q", pair)
		}
		switch strings.ToLower(key) {
		case "althosts":
			cs.AltHosts = strings.Split(value, ",")
		case "rctime":
			t, err := strconv.Atoi(value)
			if err != nil || t < 0 {
				return fmt.Errorf("invalid rcTime %q", value)
			}
			cs.ReconnectTime = t
		case "charset":
			cs.Charset = value
		case "autocommit":
			on, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid autocommit %q", value)
			}
			cs.Autocommit = on
		default:
			return fmt.Errorf("unknown connection property %q", key)
		}
	}
	return nil
}

// URL rebuilds the transport-facing connection URL. Credentials ride in the
// separate user/password arguments of the connect call, so their segments
// stay empty here.
func (cs *ConnectionString) URL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CUBRID:%s:%d:%s:::", cs.Host, cs.Port, cs.Database)
	sep := "?"
	if len(cs.AltHosts) > 0 {
		fmt.Fprintf(&sb, "%saltHosts=%s", sep, strings.Join(cs.AltHosts, ","))
		sep = "&"
	}
	if cs.ReconnectTime > 0 {
		fmt.Fprintf(&sb, "%srcTime=%d", sep, cs.ReconnectTime)
	}
	return sb.String()
}
