// Command-line stress test that simulates concurrent post views against the
// API, verifies the counter loses no updates, and produces CSV + HTML reports.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"cms/config"
)

const baseURL = "http://127.0.0.1:8080/api/v1"

var client = &http.Client{Timeout: 10 * time.Second}

// viewResult 记录单次并发 view 的结果
type viewResult struct {
	Worker    int
	Status    int
	ErrMsg    string
	Timestamp time.Time
}

// ======================= 基本 HTTP helper =======================

// doJSON serializes a JSON body and sends the request.
func doJSON(method, url string, body any, headers map[string]string) (int, []byte, error) {
	var buf []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		buf = b
	}
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(buf))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

func decodeMap(data []byte) map[string]any {
	var m map[string]any
	_ = json.Unmarshal(data, &m)
	return m
}

// ======================= 帐号与文章 Helpers =======================

// registerUser ensures the test account exists (idempotent).
func registerUser(username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	status, _, err := doJSON("POST", baseURL+"/users/register", body, nil)
	if err != nil {
		return err
	}
	if status != 200 && status != 422 { // 422 表示已存在（可接受）
		return fmt.Errorf("register status %d", status)
	}
	return nil
}

// loginUser logs in and returns the access token.
func loginUser(username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	status, data, err := doJSON("POST", baseURL+"/users/login", body, map[string]string{"X-Device": "stress"})
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", fmt.Errorf("login status %d body=%s", status, string(data))
	}
	token, _ := decodeMap(data)["access_token"].(string)
	if token == "" {
		return "", fmt.Errorf("login response missing access_token")
	}
	return token, nil
}

// createPost creates a published post and returns its id and starting views.
func createPost(token, slug string) (uint64, int64, error) {
	body := map[string]any{
		"title":   "Stress Target",
		"slug":    slug,
		"content": "view counter target",
		"status":  "published",
	}
	status, data, err := doJSON("POST", baseURL+"/posts", body, map[string]string{"Authorization": "Bearer " + token})
	if err != nil {
		return 0, 0, err
	}
	if status != 201 {
		return 0, 0, fmt.Errorf("create post status %d body=%s", status, string(data))
	}
	m := decodeMap(data)
	id, _ := m["id"].(float64)
	views, _ := m["views"].(float64)
	return uint64(id), int64(views), nil
}

// viewPost hits the public view endpoint once.
func viewPost(id uint64) (int, int64, error) {
	status, data, err := doJSON("GET", fmt.Sprintf("%s/posts/%d", baseURL, id), nil, nil)
	if err != nil {
		return 0, 0, err
	}
	views, _ := decodeMap(data)["views"].(float64)
	return status, int64(views), nil
}

// ======================= 基础功能连通性测试 =======================

// endpointSmokeTests exercises the main endpoints with positive and negative cases.
func endpointSmokeTests() error {
	username := fmt.Sprintf("smoke-%d", time.Now().UnixNano()%1000000)
	password := "SmokePwd123!"
	email := username + "@example.com"

	if err := registerUser(username, email, password); err != nil {
		return fmt.Errorf("register failed: %w", err)
	}

	// Duplicate registration should be rejected (422).
	if status, _, err := doJSON("POST", baseURL+"/users/register",
		map[string]string{"username": username, "email": email, "password": password}, nil); err != nil || status != 422 {
		return fmt.Errorf("register (duplicate) expected 422, got %d err=%v", status, err)
	}

	token, err := loginUser(username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Login with wrong password should be unauthorized.
	if status, _, err := doJSON("POST", baseURL+"/users/login",
		map[string]string{"username": username, "password": "wrong-password"}, nil); err != nil || status != 401 {
		return fmt.Errorf("login (invalid creds) expected 401, got %d err=%v", status, err)
	}

	// Duplicate slug should be rejected and the first post kept.
	slug := fmt.Sprintf("smoke-%d", time.Now().UnixNano())
	id, _, err := createPost(token, slug)
	if err != nil {
		return err
	}
	if _, _, err := createPost(token, slug); err == nil {
		return fmt.Errorf("duplicate slug accepted")
	}
	if status, _, err := viewPost(id); err != nil || status != 200 {
		return fmt.Errorf("view failed: status=%d err=%v", status, err)
	}

	// A comment must start out pending.
	status, data, err := doJSON("POST", fmt.Sprintf("%s/posts/%d/comments", baseURL, id),
		map[string]string{"content": "smoke comment"}, map[string]string{"Authorization": "Bearer " + token})
	if err != nil || status != 201 {
		return fmt.Errorf("comment failed: status=%d err=%v", status, err)
	}
	if decodeMap(data)["status"] != "pending" {
		return fmt.Errorf("comment status = %v, want pending", decodeMap(data)["status"])
	}

	log.Println("endpoint smoke tests passed: register/login/post/view/comment scenarios verified")
	return nil
}

// ======================= 并发测试与报告生成 =======================

// concurrentViewTest fires viewers concurrently at one post and verifies the
// counter advanced by exactly the number of successful views.
func concurrentViewTest(viewers, maxConcurrent int, outCSV, outHTML string) error {
	username := fmt.Sprintf("stress-%d", time.Now().UnixNano()%1000000)
	password := "StressPwd123!"
	if err := registerUser(username, username+"@example.com", password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	token, err := loginUser(username, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	postID, startViews, err := createPost(token, fmt.Sprintf("stress-%d", time.Now().UnixNano()))
	if err != nil {
		return fmt.Errorf("create post error: %w", err)
	}

	jobs := make(chan int, viewers)
	results := make(chan viewResult, viewers)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for w := range jobs {
			status, _, err := viewPost(postID)
			res := viewResult{Worker: w, Status: status, Timestamp: time.Now()}
			if err != nil {
				res.ErrMsg = err.Error()
			}
			results <- res
		}
	}

	workers := maxConcurrent
	if workers < 1 {
		workers = 10
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for i := 0; i < viewers; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)

	var all []viewResult
	succeeded := 0
	for r := range results {
		if r.Status == 200 && r.ErrMsg == "" {
			succeeded++
		}
		all = append(all, r)
	}

	// 最终读取会再计一次，所以期望值为 start + succeeded + 1
	_, finalViews, err := viewPost(postID)
	if err != nil {
		return fmt.Errorf("final view error: %w", err)
	}
	expected := startViews + int64(succeeded) + 1
	if finalViews != expected {
		return fmt.Errorf("lost updates: views=%d expected=%d (start=%d ok=%d)", finalViews, expected, startViews, succeeded)
	}
	log.Printf("view counter verified: %d concurrent views, final=%d, no lost updates", succeeded, finalViews)

	// 写 CSV 报告
	csvFile, err := os.Create(outCSV)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	csvWriter := csv.NewWriter(csvFile)
	defer csvWriter.Flush()
	_ = csvWriter.Write([]string{"Worker", "Status", "ErrMessage", "Timestamp"})
	for _, r := range all {
		_ = csvWriter.Write([]string{
			fmt.Sprintf("%d", r.Worker),
			fmt.Sprintf("%d", r.Status),
			r.ErrMsg,
			r.Timestamp.Format(time.RFC3339),
		})
	}
	csvWriter.Flush()

	if err := writeHTMLReport(outHTML, all); err != nil {
		log.Printf("write HTML report error: %v", err)
	}
	return nil
}

// writeHTMLReport renders a basic table so failures are easy to eyeball.
func writeHTMLReport(path string, results []viewResult) error {
	const tpl = `
<!doctype html>
<html>
<head><meta charset="utf-8"><title>View Counter Test Report</title>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align:left }
th { background: #f4f4f4; }
</style>
</head>
<body>
<h2>View Counter Test Report ({{ .GeneratedAt }})</h2>
<table>
<thead><tr><th>Worker</th><th>Status</th><th>Error</th><th>Timestamp</th></tr></thead>
<tbody>
{{ range .Rows }}
<tr>
<td>{{ .Worker }}</td>
<td>{{ .Status }}</td>
<td>{{ .ErrMsg }}</td>
<td>{{ .Timestamp }}</td>
</tr>
{{ end }}
</tbody>
</table>
</body>
</html>`

	data := struct {
		GeneratedAt string
		Rows        []viewResult
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Rows:        results,
	}

	t, err := template.New("report").Parse(tpl)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

// ======================= main =======================

func main() {
	// 清理 Redis 中的限流计数，避免压测被限流干扰
	config.InitConfig("../../")
	config.InitRedis()
	rdb := config.RedisClient
	keys, _ := rdb.Keys(rdb.Context(), "cms:rl:*").Result()
	if len(keys) > 0 {
		_ = rdb.Del(rdb.Context(), keys...).Err()
	}

	viewers := 50
	maxConcurrent := 10
	outCSV := "view_report.csv"
	outHTML := "view_report.html"

	if err := endpointSmokeTests(); err != nil {
		log.Fatalf("endpoint smoke tests failed: %v", err)
	}

	start := time.Now()
	if err := concurrentViewTest(viewers, maxConcurrent, outCSV, outHTML); err != nil {
		log.Fatalf("concurrent test failed: %v", err)
	}
	elapsed := time.Since(start)
	log.Printf("concurrent test finished in %s, CSV=%s HTML=%s\n", elapsed.String(), outCSV, outHTML)
	fmt.Println("All view-counter stress tests completed successfully!")
}
