package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/mech-backend/db/sqlc"
	"github.com/saeidalz13/mech-backend/models/combat"
	mc "github.com/saeidalz13/mech-backend/models/connection"
	"github.com/saeidalz13/mech-backend/models/mech"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{
		// not a high-latency stream, a short handshake is enough
		HandshakeTimeout: time.Second * 5,
		ReadBufferSize:   2048,
		WriteBufferSize:  2048,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}
)

// RequestProcessor serves the websocket bout protocol. Each connection
// gets a session that owns at most one bout.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	boutManager    combat.BoutManager
	catalog        *mech.Catalog
	dbm            *sqlc.DbManager
	ipnet          net.IPNet
}

// dbm may be nil, which disables analytics and hangar lookups.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	boutManager combat.BoutManager,
	catalog *mech.Catalog,
	dbm *sqlc.DbManager,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		boutManager:    boutManager,
		catalog:        catalog,
		dbm:            dbm,
		ipnet:          serverIpNet(),
	}
}

// serverIpNet finds the first non loopback IPv4 address of this host,
// falling back to loopback.
func serverIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if v, ok := addr.(*net.IPNet); ok && v.IP.To4() != nil && !v.IP.IsLoopback() {
				return *v
			}
		}
	}
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) hangar() MechLoader {
	if rp.dbm == nil || rp.dbm.Hangar == nil {
		return nil
	}
	return rp.dbm.Hangar
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("could not upgrade websocket connection")
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("a new connection established")
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		// the original loop of this session picks up the new conn
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
		}
	}
}

func (rp RequestProcessor) recordBoutStarted() {
	if rp.dbm == nil || rp.dbm.Analytics == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	// analytics never block a bout
	if err := rp.dbm.Analytics.IncrementBoutsStarted(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		log.Warn().Err(err).Msg("increment bouts started")
	}
}

func (rp RequestProcessor) endBout(session *mc.Session) {
	if bout := session.Bout(); bout != nil {
		rp.boutManager.EndBout(bout.Uuid)
		session.SetBout(nil)
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		rp.endBout(session)
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Info().Str("session", sessionId).Msg("session closed")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// retries are exhausted by now
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// a new bout replaces whatever bout the session had
		case mc.CodeCreateBout:
			ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
			bout, respMsg := NewRequest(payload).HandleCreateBout(ctx, rp.catalog, rp.boutManager, rp.hangar())
			cancel()

			if bout != nil {
				rp.endBout(session)
				session.SetBout(bout)
				rp.recordBoutStarted()
			}
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeSubmitActions:
			bout := session.Bout()
			respMsg := NewRequest(payload).HandleSubmitActions(bout)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil || respMsg.Payload.Outcome.Status == combat.StatusOngoing {
				continue sessionLoop
			}

			if err := rp.sessionManager.WriteToSessionConn(session, NewEndBoutMessage(bout), mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			rp.endBout(session)

		case mc.CodeForfeit:
			bout := session.Bout()
			if bout == nil {
				continue sessionLoop
			}
			bout.Forfeit()
			if err := rp.sessionManager.WriteToSessionConn(session, NewEndBoutMessage(bout), mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			rp.endBout(session)

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}
