package ctrlbase

import (
	"log"
	"path"

	"go.bytecake.dev/pws/db"
	"go.bytecake.dev/pws/partition"
)

type Controller struct {
	DB          *db.DB
	Partitions  *partition.Store
	ProxyPrefix string
}

// Path returns a URL path with the proxy prefix included
func (c *Controller) Path(rel string) string {
	return path.Join(c.ProxyPrefix, rel)
}

type Stats struct {
	Albums      int
	Music       int
	OrphanMusic int
	Partitions  int
}

// Stats counts what the catalog currently holds, for /debug/vars.
func (c *Controller) Stats() Stats {
	var stats Stats
	dbStats, err := c.DB.Stats()
	if err != nil {
		log.Printf("error counting catalog: %v", err)
	}
	stats.Albums = dbStats.Albums
	stats.Music = dbStats.Music
	stats.OrphanMusic = dbStats.OrphanMusic

	ids, err := c.Partitions.List()
	if err != nil {
		log.Printf("error listing partitions: %v", err)
	}
	stats.Partitions = len(ids)
	return stats
}
