package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/infra/memory"
	"bigbang-quiz-service/internal/storage"
)

type testEnv struct {
	server *httptest.Server
	admins *app.AdminService
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	questionRepo := memory.NewQuestionRepository()
	questionRepo.Seed(sampleQuestions())

	images, err := storage.NewImageStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("image store: %v", err)
	}

	ranking := app.NewRankingService(memory.NewRankingRepository())
	selector := app.NewRoundSelector(questionRepo, rand.New(rand.NewSource(7)))
	games := app.NewGameService(selector, memory.NewSessionStore(), ranking)
	questions := app.NewQuestionService(questionRepo, images, logger)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	admins := app.NewAdminService(memory.NewAdminRepository(), tokens)

	api := NewAPI(games, questions, ranking, admins, tokens, images, logger)
	server := httptest.NewServer(api.Routes())
	t.Cleanup(server.Close)
	return &testEnv{server: server, admins: admins, tokens: tokens}
}

func sampleQuestions() []domain.Question {
	names := []struct{ name, symbol string }{
		{"Hidrogênio", "H"}, {"Hélio", "He"}, {"Lítio", "Li"},
		{"Berílio", "Be"}, {"Boro", "B"}, {"Carbono", "C"},
		{"Nitrogênio", "N"}, {"Oxigênio", "O"}, {"Flúor", "F"},
	}
	out := make([]domain.Question, 0, len(names))
	for i, n := range names {
		out = append(out, domain.Question{
			Name:   n.name,
			Symbol: n.symbol,
			Level:  domain.LevelCurioso,
			Hints:  []string{fmt.Sprintf("dica %d-1", i), fmt.Sprintf("dica %d-2", i), fmt.Sprintf("dica %d-3", i)},
		})
	}
	return out
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, payload
}

func (e *testEnv) loginAs(t *testing.T, register app.RegisterAdmin) string {
	t.Helper()
	if _, err := e.admins.Register(context.Background(), register); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	resp, payload := e.do(t, http.MethodPost, "/administradores/login", "", map[string]string{
		"email": register.Email,
		"senha": register.Password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %s", resp.StatusCode, payload)
	}
	var out loginResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func TestFullGameOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp, payload := env.do(t, http.MethodPost, "/jogo/iniciar", "", map[string]int{"nivel": 1})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start status %d: %s", resp.StatusCode, payload)
	}
	var started startGameResponse
	if err := json.Unmarshal(payload, &started); err != nil {
		t.Fatalf("decode start: %v", err)
	}
	if started.SessionID == "" {
		t.Fatal("expected session id")
	}
	if len(started.Options) != len(sampleQuestions()) {
		t.Fatalf("expected %d options, got %d", len(sampleQuestions()), len(started.Options))
	}
	if started.RoundLimit != app.RoundLimit {
		t.Fatalf("expected round limit %d, got %d", app.RoundLimit, started.RoundLimit)
	}

	base := "/jogo/" + started.SessionID

	resp, payload = env.do(t, http.MethodPost, base+"/dica", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hint status %d: %s", resp.StatusCode, payload)
	}
	var hint app.HintResult
	if err := json.Unmarshal(payload, &hint); err != nil {
		t.Fatalf("decode hint: %v", err)
	}
	if hint.Hint == "" || hint.Index != 0 {
		t.Fatalf("unexpected first hint %+v", hint)
	}

	target := started.Rounds[0].Name
	resp, payload = env.do(t, http.MethodPost, base+"/resposta", "", map[string]string{"nomeElemento": target})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("guess status %d: %s", resp.StatusCode, payload)
	}
	var play app.PlayResult
	if err := json.Unmarshal(payload, &play); err != nil {
		t.Fatalf("decode guess: %v", err)
	}
	if !play.Correct || play.Awarded != 5 {
		t.Fatalf("expected correct first-hint guess worth 5, got %+v", play)
	}

	resp, payload = env.do(t, http.MethodPost, base+"/posicao", "", map[string]string{"posicaoElemento": started.Rounds[0].PositionName})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("placement status %d: %s", resp.StatusCode, payload)
	}
	if err := json.Unmarshal(payload, &play); err != nil {
		t.Fatalf("decode placement: %v", err)
	}
	if !play.Correct || play.Score != 10 || !play.RoundOver {
		t.Fatalf("expected 5+5 after placement, got %+v", play)
	}

	// Seven rounds still to play, so the score cannot be banked yet.
	resp, payload = env.do(t, http.MethodPost, base+"/finalizar", "", map[string]string{"usuario": "Ana"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for mid-session finish, got %d: %s", resp.StatusCode, payload)
	}

	for i := 1; i < started.RoundLimit; i++ {
		resp, payload = env.do(t, http.MethodPost, base+"/dica", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("round %d hint status %d: %s", i, resp.StatusCode, payload)
		}
		resp, payload = env.do(t, http.MethodPost, base+"/resposta", "", map[string]string{"nomeElemento": started.Rounds[i].Name})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("round %d guess status %d: %s", i, resp.StatusCode, payload)
		}
		resp, payload = env.do(t, http.MethodPost, base+"/posicao", "", map[string]string{"posicaoElemento": started.Rounds[i].PositionName})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("round %d placement status %d: %s", i, resp.StatusCode, payload)
		}
	}

	resp, payload = env.do(t, http.MethodPost, base+"/finalizar", "", map[string]string{"usuario": "Ana"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("finish status %d: %s", resp.StatusCode, payload)
	}
	var entry domain.RankingEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Player != "Ana" || entry.Score != 80 || entry.LevelTag != "CURIOSO" {
		t.Fatalf("unexpected ranking entry %+v", entry)
	}

	resp, _ = env.do(t, http.MethodPost, base+"/dica", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for finished session, got %d", resp.StatusCode)
	}
}

func TestStartGameRejectsBadLevel(t *testing.T) {
	env := newTestEnv(t)

	for _, level := range []int{0, 9} {
		resp, _ := env.do(t, http.MethodPost, "/jogo/iniciar", "", map[string]int{"nivel": level})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("level %d: expected 400, got %d", level, resp.StatusCode)
		}
	}

	resp, _ := env.do(t, http.MethodPost, "/jogo/iniciar", "", map[string]int{"nivel": 3})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for level without questions, got %d", resp.StatusCode)
	}
}

func TestQuestionRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/questoes", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodGet, "/questoes", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", resp.StatusCode)
	}
}

func TestQuestionAuthoringOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, app.RegisterAdmin{
		Name: "Root", Email: "root@bigbang.dev", Password: "segredo1", SuperAdmin: true,
	})

	body := map[string]any{
		"nomeElemento": "Sódio",
		"simbolo":      "Na",
		"nivel":        2,
		"dicas":        []string{"metal alcalino", "reage com água", "símbolo Na"},
	}
	resp, payload := env.do(t, http.MethodPost, "/questoes", token, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d: %s", resp.StatusCode, payload)
	}
	var created domain.Question
	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	resp, _ = env.do(t, http.MethodPost, "/questoes", token, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate element, got %d", resp.StatusCode)
	}

	body["nomeElemento"] = "Unobtânio"
	body["simbolo"] = "Ub"
	resp, _ = env.do(t, http.MethodPost, "/questoes", token, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown element, got %d", resp.StatusCode)
	}

	resp, payload = env.do(t, http.MethodGet, fmt.Sprintf("/questoes/%d", created.ID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status %d: %s", resp.StatusCode, payload)
	}

	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/questoes/%d", created.ID), token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", resp.StatusCode)
	}
}

func TestRankingPermissionsOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp, payload := env.do(t, http.MethodPost, "/ranking", "", map[string]any{
		"usuario": "Bia", "pontuacao": 42, "nivel": "CURIOSO",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status %d: %s", resp.StatusCode, payload)
	}
	var entry domain.RankingEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}

	resp, payload = env.do(t, http.MethodGet, "/ranking/top", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("top status %d: %s", resp.StatusCode, payload)
	}
	var board domain.LevelBoard
	if err := json.Unmarshal(payload, &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if len(board["CURIOSO"]) != 1 {
		t.Fatalf("expected one CURIOSO entry, got %+v", board)
	}

	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/ranking/%d", entry.ID), "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	plain := env.loginAs(t, app.RegisterAdmin{
		Name: "Leitor", Email: "leitor@bigbang.dev", Password: "segredo1",
	})
	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/ranking/%d", entry.ID), plain, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without delete permission, got %d", resp.StatusCode)
	}

	scorer := env.loginAs(t, app.RegisterAdmin{
		Name: "Scorer", Email: "scorer@bigbang.dev", Password: "segredo1", CanDeleteScores: true,
	})
	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/ranking/%d", entry.ID), scorer, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 with delete permission, got %d", resp.StatusCode)
	}
}

func TestAdminGuardsOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	superToken := env.loginAs(t, app.RegisterAdmin{
		Name: "Root", Email: "root@bigbang.dev", Password: "segredo1", SuperAdmin: true,
	})
	peerToken := env.loginAs(t, app.RegisterAdmin{
		Name: "Peer", Email: "peer@bigbang.dev", Password: "segredo1",
	})

	// Registration with a token requires manage rights.
	resp, _ := env.do(t, http.MethodPost, "/administradores/registrar", peerToken, map[string]any{
		"nome": "Intruso", "email": "intruso@bigbang.dev", "senha": "segredo1",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 registering without manage rights, got %d", resp.StatusCode)
	}

	// Self-deletion is forbidden even for the super admin.
	resp, _ = env.do(t, http.MethodDelete, "/administradores/1", superToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on self-deletion, got %d", resp.StatusCode)
	}

	// Non-super requesters cannot delete anyone.
	resp, _ = env.do(t, http.MethodDelete, "/administradores/1", peerToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-super requester, got %d", resp.StatusCode)
	}

	// The super admin can delete a peer.
	resp, _ = env.do(t, http.MethodDelete, "/administradores/2", superToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 deleting peer, got %d", resp.StatusCode)
	}
}

func TestImageUploadRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, app.RegisterAdmin{
		Name: "Root", Email: "root@bigbang.dev", Password: "segredo1", SuperAdmin: true,
	})

	resp, payload := env.do(t, http.MethodPost, "/questoes", token, map[string]any{
		"nomeElemento": "Ouro",
		"simbolo":      "Au",
		"nivel":        3,
		"dicas":        []string{"metal precioso", "não oxida", "símbolo do latim aurum"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d: %s", resp.StatusCode, payload)
	}
	var question domain.Question
	if err := json.Unmarshal(payload, &question); err != nil {
		t.Fatalf("decode question: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("arquivo", "ouro.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.WriteField("tipo", "imagem"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/questoes/%d/imagem", env.server.URL, question.ID), &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	uploadResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	uploadPayload, _ := io.ReadAll(uploadResp.Body)
	uploadResp.Body.Close()
	if uploadResp.StatusCode != http.StatusOK {
		t.Fatalf("upload status %d: %s", uploadResp.StatusCode, uploadPayload)
	}
	if err := json.Unmarshal(uploadPayload, &question); err != nil {
		t.Fatalf("decode uploaded: %v", err)
	}
	if question.ImagePath == "" {
		t.Fatal("expected stored image path")
	}

	resp, payload = env.do(t, http.MethodGet, "/imagens/"+question.ImagePath, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("serve status %d", resp.StatusCode)
	}
	if string(payload) != "png-bytes" {
		t.Fatalf("unexpected image body %q", payload)
	}
}
