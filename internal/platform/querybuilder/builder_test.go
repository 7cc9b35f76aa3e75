package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("tournaments").
		Where(Eq("status", "active"), Lte("finishes_at", 1700000000), IsNull("deleted_at")).
		OrderBy("finishes_at").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM tournaments WHERE status = $1 AND finishes_at <= $2 AND deleted_at IS NULL ORDER BY finishes_at LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "active" || args[1] != 1700000000 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	query, args, err := Select("*").
		From("players").
		Where(In("public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM players WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("transactions").
		Columns("public_id", "value").
		Values("tx1", int64(1620)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO transactions (public_id, value) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "tx1" || args[1] != int64(1620) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderWithExpr(t *testing.T) {
	query, args, err := Update("users").
		SetExpr("current_balance", "current_balance + ?", int64(500)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET current_balance = current_balance + $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(500) || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderConditionalStatus(t *testing.T) {
	query, args, err := Update("tournaments").
		Set("status", "processing").
		Where(Eq("public_id", "t1"), Eq("status", "active")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE tournaments SET status = $1 WHERE public_id = $2 AND status = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
