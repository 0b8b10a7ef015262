package shard

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/config"
	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/pseudomuto/shardkeeper/pkg/rewrite"
)

// ErrNoShards is returned when a statement is planned without any shard to
// run on.
var ErrNoShards = errors.New("no shards configured")

// Unit is one rewritten statement bound to the shard it runs on.
type Unit struct {
	Shard config.Shard
	SQL   string
}

// Plan renders the parsed statement once per shard, replacing every logical
// table with the shard's physical table and appending derived columns.
// Units come back in the order of the shards.
//
// Example:
//
//	ctx, err := parser.ParseString("SELECT AVG(price) FROM t_order", parser.MySQL{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	units, err := shard.Plan(ctx, cfg.Shards)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, u := range units {
//		fmt.Printf("%s: %s\n", u.Shard.Name, u.SQL)
//	}
func Plan(ctx *query.SelectContext, shards []config.Shard) ([]Unit, error) {
	if len(shards) == 0 {
		return nil, ErrNoShards
	}

	units := make([]Unit, len(shards))
	for i, s := range shards {
		sql, err := rewrite.String(ctx, s.Tables)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to rewrite statement for shard %q", s.Name)
		}

		units[i] = Unit{Shard: s, SQL: sql}
	}

	return units, nil
}
