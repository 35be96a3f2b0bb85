package jsonrpc

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof"
	"strconv"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"starledger/block"
	"starledger/chain"
	"starledger/errors"
	"starledger/exception"
	"starledger/interfaces"
	"starledger/jsonx"
	"starledger/logx"
	"starledger/monitoring"
	"starledger/types"
)

// --- Error mapping used by handlers ---

var rpcErrorCodes = map[errors.LedgerErrorCode]jrpc2.Code{
	errors.ErrCodeInvalidRequest:     jrpc2.Code(-32602),
	errors.ErrCodeInvalidAddress:     jrpc2.Code(-32602),
	errors.ErrCodeInvalidPayload:     jrpc2.Code(-32602),
	errors.ErrCodeMalformedChallenge: jrpc2.Code(-32001),
	errors.ErrCodeChallengeExpired:   jrpc2.Code(-32002),
	errors.ErrCodeSignatureInvalid:   jrpc2.Code(-32003),
	errors.ErrCodeChainInvalid:       jrpc2.Code(-32004),
	errors.ErrCodeBlockInvalid:       jrpc2.Code(-32005),
}

func toJRPC2Error(err error) error {
	if err == nil {
		return nil
	}
	var ledgerErr errors.LedgerError
	if uerr := jsonx.Unmarshal([]byte(err.Error()), &ledgerErr); uerr == nil && ledgerErr.Code != "" {
		code, ok := rpcErrorCodes[ledgerErr.Code]
		if !ok {
			code = jrpc2.Code(-32000)
		}
		return jrpc2.Errorf(code, "%s", ledgerErr.Message).WithData(ledgerErr)
	}
	return jrpc2.Errorf(jrpc2.Code(-32000), "%s", err.Error())
}

// --- Params/Results ---

type blockData struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"`
	Timestamp int64  `json:"timestamp"`
	Owner     string `json:"owner,omitempty"`
	Payload   string `json:"payload"`
}

func toBlockData(b *block.Block) *blockData {
	return &blockData{
		Height:    b.Height,
		Hash:      b.Hash,
		PrevHash:  b.PrevHash,
		Timestamp: b.Timestamp,
		Owner:     b.Owner,
		Payload:   b.Payload,
	}
}

type initializeChainResponse struct {
	Initialized bool `json:"initialized"`
}

type getBlockByHashParams struct {
	Hash string `json:"hash"`
}

type getBlockByHeightParams struct {
	Height uint64 `json:"height"`
}

type getStarsParams struct {
	Address string `json:"address"`
}

type getStarsResponse struct {
	Address string            `json:"address"`
	Stars   []types.StarEntry `json:"stars"`
}

type validateChainResponse struct {
	Valid  bool          `json:"valid"`
	Faults []chain.Fault `json:"faults"`
}

type requestChallengeParams struct {
	Address string `json:"address"`
}

type requestChallengeResponse struct {
	Address   string `json:"address"`
	Challenge string `json:"challenge"`
}

type submitStarParams struct {
	Address   string          `json:"address"`
	Challenge string          `json:"challenge"`
	Signature string          `json:"signature"`
	Star      json.RawMessage `json:"star"`
}

// --- Server ---

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

type Server struct {
	addr         string
	ledgerSvc    interfaces.LedgerService
	ownershipSvc interfaces.OwnershipService
	healthSvc    interfaces.HealthService
	corsConfig   CORSConfig
}

func NewServer(addr string, ledgerSvc interfaces.LedgerService, ownershipSvc interfaces.OwnershipService, healthSvc interfaces.HealthService) *Server {
	return &Server{
		addr:         addr,
		ledgerSvc:    ledgerSvc,
		ownershipSvc: ownershipSvc,
		healthSvc:    healthSvc,
		corsConfig: CORSConfig{
			AllowedOrigins: []string{},
			AllowedMethods: []string{},
			AllowedHeaders: []string{},
			MaxAge:         0,
		},
	}
}

// SetCORSConfig allows configuring CORS settings
func (s *Server) SetCORSConfig(config CORSConfig) {
	s.corsConfig = config
}

func (s *Server) Start() {
	methods := s.buildMethodMap()
	jh := jhttp.NewBridge(methods, &jhttp.BridgeOptions{Server: &jrpc2.ServerOptions{}})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		logx.Debug("RPC", "Request from ", extractClientIPFromRequest(r))
		jh.ServeHTTP(w, r)
	})

	mux := http.NewServeMux()
	mux.Handle("/", h)
	monitoring.RegisterMetrics(mux)

	exception.SafeGo("jsonrpc-server", func() {
		if err := http.ListenAndServe(s.addr, mux); err != nil {
			logx.Error("RPC", "Server stopped: ", err)
		}
	})
	logx.Info("RPC", "JSON-RPC server listening on ", s.addr)
}

func (s *Server) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	for _, allowed := range s.corsConfig.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			break
		}
	}
	if len(s.corsConfig.AllowedMethods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(s.corsConfig.AllowedMethods, ", "))
	}
	if len(s.corsConfig.AllowedHeaders) > 0 {
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(s.corsConfig.AllowedHeaders, ", "))
	}
	if s.corsConfig.MaxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(s.corsConfig.MaxAge))
	}
}

// Build jrpc2 method map
func (s *Server) buildMethodMap() handler.Map {
	return handler.Map{
		MethodChainInitialize: handler.New(func(ctx context.Context) (*initializeChainResponse, error) {
			if err := s.ledgerSvc.InitializeChain(ctx); err != nil {
				return nil, toJRPC2Error(err)
			}
			return &initializeChainResponse{Initialized: true}, nil
		}),
		MethodChainGetBlockByHash: handler.New(func(ctx context.Context, p getBlockByHashParams) (*blockData, error) {
			b, err := s.ledgerSvc.GetBlockByHash(ctx, p.Hash)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			if b == nil {
				return nil, nil
			}
			return toBlockData(b), nil
		}),
		MethodChainGetBlockByHeight: handler.New(func(ctx context.Context, p getBlockByHeightParams) (*blockData, error) {
			b, err := s.ledgerSvc.GetBlockByHeight(ctx, p.Height)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			if b == nil {
				return nil, nil
			}
			return toBlockData(b), nil
		}),
		MethodChainGetStarsByAddress: handler.New(func(ctx context.Context, p getStarsParams) (*getStarsResponse, error) {
			stars, err := s.ledgerSvc.GetStarsByAddress(ctx, p.Address)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return &getStarsResponse{Address: p.Address, Stars: stars}, nil
		}),
		MethodChainValidate: handler.New(func(ctx context.Context) (*validateChainResponse, error) {
			faults, err := s.ledgerSvc.ValidateChain(ctx)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return &validateChainResponse{Valid: len(faults) == 0, Faults: faults}, nil
		}),
		MethodOwnershipRequestChallenge: handler.New(func(ctx context.Context, p requestChallengeParams) (*requestChallengeResponse, error) {
			challenge, err := s.ownershipSvc.RequestChallenge(ctx, p.Address)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return &requestChallengeResponse{Address: p.Address, Challenge: challenge}, nil
		}),
		MethodOwnershipSubmitStar: handler.New(func(ctx context.Context, p submitStarParams) (*blockData, error) {
			if len(p.Star) == 0 {
				return nil, toJRPC2Error(errors.NewError(errors.ErrCodeInvalidPayload, errors.ErrMsgInvalidPayload))
			}
			b, err := s.ownershipSvc.SubmitStar(ctx, p.Address, p.Challenge, p.Signature, p.Star)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return toBlockData(b), nil
		}),
		MethodHealthCheck: handler.New(func(ctx context.Context) (*types.HealthStatus, error) {
			status, err := s.healthSvc.Check(ctx)
			if err != nil {
				return nil, toJRPC2Error(err)
			}
			return status, nil
		}),
	}
}
