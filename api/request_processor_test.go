package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"

	"github.com/saeidalz13/mech-backend/models/combat"
	mc "github.com/saeidalz13/mech-backend/models/connection"
	"github.com/saeidalz13/mech-backend/models/mech"
)

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/bout"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg[T any](t *testing.T, conn *websocket.Conn) mc.Message[T] {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(time.Second * 5)); err != nil {
		t.Fatal(err)
	}
	var msg mc.Message[T]
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read from ws conn: %v", err)
	}
	return msg
}

func writeMsg(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("failed to write to ws conn: %v", err)
	}
}

func newSession(t *testing.T, ts *httptest.Server) (*websocket.Conn, string) {
	t.Helper()
	conn := dial(t, wsURL(ts))
	msg := readMsg[mc.RespSessionId](t, conn)
	if msg.Code != mc.CodeSessionID || msg.Payload.SessionID == "" {
		t.Fatalf("expected a session id first, got %+v", msg)
	}
	return conn, msg.Payload.SessionID
}

func createBoutMsg(player mech.SavedMech, enemy *mech.SavedMech, seed int64) mc.Message[mc.ReqCreateBout] {
	msg := mc.NewMessage[mc.ReqCreateBout](mc.CodeCreateBout)
	msg.AddPayload(mc.ReqCreateBout{Player: player, Enemy: enemy, Seed: &seed})
	return msg
}

var cockpitOnly = mech.SavedMech{
	Head:    "basic",
	Chest:   "basic",
	Arms:    "basic",
	Legs:    "basic",
	Modules: []mech.SavedModule{{Name: "cockpit", X: 5, Y: 4}},
}

func TestSignals(t *testing.T) {
	ts := newTestServer(t)
	conn, _ := newSession(t, ts)

	tests := []struct {
		name         string
		req          interface{}
		expectedCode uint8
	}{
		{name: "invalid code", req: mc.NewSignal(255), expectedCode: mc.CodeInvalidSignal},
		{name: "missing code", req: map[string]string{"payload": "x"}, expectedCode: mc.CodeSignalAbsent},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			writeMsg(t, conn, test.req)
			msg := readMsg[mc.NoPayload](t, conn)
			if msg.Code != test.expectedCode {
				t.Fatalf("expected code: %d\tgot: %d", test.expectedCode, msg.Code)
			}
			if msg.Error == nil {
				t.Fatal("expected an error in the response")
			}
		})
	}

	writeMsg(t, conn, mc.NewSignal(mc.CodeSubmitActions))
	msg := readMsg[mc.RespTurnResolved](t, conn)
	if msg.Error == nil || msg.Error.Message != "BoutNotExist" {
		t.Fatalf("actions without a bout must fail, got %+v", msg.Error)
	}
}

func TestInvalidSessionId(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, wsURL(ts)+"?"+URLQuerySessionIDKeyword+"=nope")

	msg := readMsg[mc.NoPayload](t, conn)
	if msg.Code != mc.CodeReceivedInvalidSessionID {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeReceivedInvalidSessionID, msg.Code)
	}
}

func TestBoutFlow(t *testing.T) {
	db, mock := newMockDb(t)
	ts := newTestServer(t, WithDb(db))
	conn, _ := newSession(t, ts)

	mock.ExpectExec(`INSERT INTO server_analytics`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	writeMsg(t, conn, createBoutMsg(readyMech, &cockpitOnly, 3))
	created := readMsg[mc.RespCreateBout](t, conn)
	if created.Code != mc.CodeCreateBout || created.Error != nil {
		t.Fatalf("failed to create bout: %+v", created.Error)
	}
	if created.Payload.BoutUuid == "" || created.Payload.Seed != 3 {
		t.Fatalf("unexpected bout: %+v", created.Payload)
	}
	expectedResources := combat.Resources{AttacksMax: 2, HeatMax: 2}
	if created.Payload.Resources != expectedResources {
		t.Fatalf("expected resources: %+v\tgot: %+v", expectedResources, created.Payload.Resources)
	}
	if s := created.Payload.EnemyGrid[4][5]; s != combat.StatusUnknown {
		t.Fatalf("enemy cells start unknown, got %s", s)
	}

	attack := mc.NewMessage[mc.ReqSubmitActions](mc.CodeSubmitActions)
	attack.AddPayload(mc.ReqSubmitActions{Attacks: []mech.Point{mech.NewPoint(4, 4), mech.NewPoint(5, 4)}})
	writeMsg(t, conn, attack)

	resolved := readMsg[mc.RespTurnResolved](t, conn)
	if resolved.Code != mc.CodeTurnResolved || resolved.Error != nil {
		t.Fatalf("failed to resolve turn: %+v", resolved.Error)
	}
	if resolved.Payload.Outcome.Status != combat.StatusPlayerWon {
		t.Fatalf("expected status: %s\tgot: %s", combat.StatusPlayerWon, resolved.Payload.Outcome.Status)
	}
	if hits := resolved.Payload.Summary[combat.EventHit.String()]; hits != 2 {
		t.Fatalf("expected hits: %d\tgot: %d", 2, hits)
	}

	ended := readMsg[mc.RespEndBout](t, conn)
	if ended.Code != mc.CodeEndBout || ended.Payload.Status != combat.StatusPlayerWon || ended.Payload.Turns != 1 {
		t.Fatalf("unexpected end of bout: %+v", ended)
	}

	// the finished bout is gone from the session
	writeMsg(t, conn, attack)
	if msg := readMsg[mc.RespTurnResolved](t, conn); msg.Error == nil || msg.Error.Message != "BoutNotExist" {
		t.Fatalf("expected the bout to be gone, got %+v", msg.Error)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestForfeitAndRejectedBout(t *testing.T) {
	ts := newTestServer(t)
	conn, _ := newSession(t, ts)

	noCockpit := readyMech
	noCockpit.Modules = readyMech.Modules[1:]

	writeMsg(t, conn, createBoutMsg(noCockpit, nil, 1))
	if msg := readMsg[mc.RespCreateBout](t, conn); msg.Error == nil || msg.Error.Message != "NoCockpit" {
		t.Fatalf("expected the bout to be rejected, got %+v", msg.Error)
	}

	writeMsg(t, conn, createBoutMsg(readyMech, nil, 1))
	created := readMsg[mc.RespCreateBout](t, conn)
	if created.Error != nil {
		t.Fatalf("failed to create bout: %+v", created.Error)
	}

	writeMsg(t, conn, mc.NewSignal(mc.CodeForfeit))
	ended := readMsg[mc.RespEndBout](t, conn)
	if ended.Code != mc.CodeEndBout || ended.Payload.Status != combat.StatusPlayerLost {
		t.Fatalf("unexpected end of bout: %+v", ended)
	}
	if ended.Payload.BoutUuid != created.Payload.BoutUuid {
		t.Fatalf("expected bout: %s\tgot: %s", created.Payload.BoutUuid, ended.Payload.BoutUuid)
	}
}

func TestServerIpNet(t *testing.T) {
	ipnet := serverIpNet()
	if ipnet.IP.To4() == nil {
		t.Fatalf("expected an IPv4 address, got %v", ipnet.IP)
	}
}
