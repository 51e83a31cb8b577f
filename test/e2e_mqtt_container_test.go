package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rotaplan/rotaplan/core/model"
	"github.com/rotaplan/rotaplan/core/roster"
	"github.com/rotaplan/rotaplan/infra/mqtt"
	"github.com/rotaplan/rotaplan/internal/eventbus"
)

func waitForMQTTReady(broker string, timeout time.Duration) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe")
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		lastErr = token.Error()
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for broker")
	}
	return lastErr
}

func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	conf := `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
log_type notice
connection_messages true
log_timestamp true
`
	dir := t.TempDir()
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				HostFilePath:      path,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())
	if err := waitForMQTTReady(broker, 5*time.Second); err != nil {
		t.Logf("mosquitto not ready at %s: %v", broker, err)
		t.Skip("Mosquitto not ready after retries")
	}
	return cont, broker
}

func connectSubscriber(broker string, t *testing.T, topic string, onMessage paho.MessageHandler) paho.Client {
	t.Helper()
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("assignee-sim")
	cli := paho.NewClient(opts)
	var connErr error
	for i := 0; i < 5; i++ {
		token := cli.Connect()
		token.Wait()
		connErr = token.Error()
		if connErr == nil {
			break
		}
		t.Logf("subscriber connect attempt %d to %s: %v", i+1, broker, connErr)
		time.Sleep(time.Duration(i+1) * 100 * time.Millisecond)
	}
	if connErr != nil {
		t.Logf("subscriber connect failed to %s: %v", broker, connErr)
		t.Skip("Mosquitto not ready after retries")
	}
	if token := cli.Subscribe(topic, 1, onMessage); token.Wait() && token.Error() != nil {
		t.Fatalf("subscribe: %v", token.Error())
	}
	return cli
}

func TestAssignmentNotificationsWithMQTTContainer(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx := context.Background()

	cont, broker := startMosquitto(ctx, t)
	defer func() { _ = cont.Terminate(ctx) }()

	var mu sync.Mutex
	received := make(map[string][]string) // topic -> assignees
	sub := connectSubscriber(broker, t, "rota/assignments/#", func(_ paho.Client, m paho.Message) {
		var msg struct {
			Assignee string `json:"assignee"`
			Date     string `json:"date"`
			Kind     string `json:"kind"`
		}
		if err := json.Unmarshal(m.Payload(), &msg); err != nil {
			t.Errorf("bad payload on %s: %v", m.Topic(), err)
			return
		}
		mu.Lock()
		received[m.Topic()] = append(received[m.Topic()], msg.Assignee)
		mu.Unlock()
	})
	defer sub.Disconnect(100)

	bus := eventbus.New()
	defer bus.Close()
	engine, err := roster.NewEngine(roster.Config{}, nil, bus, nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	window := model.AvailabilityWindow{Start: model.DateOf(2025, time.May, 1), End: model.DateOf(2025, time.May, 31)}
	persons := []model.Person{
		{ID: "alice", Windows: []model.AvailabilityWindow{window}},
		{ID: "bob", Windows: []model.AvailabilityWindow{window}},
	}
	days := []model.Day{
		{Date: model.DateOf(2025, time.May, 1)},
		{Date: model.DateOf(2025, time.May, 2)},
		{Date: model.DateOf(2025, time.May, 3)},
	}
	res, err := engine.Solve(persons, days, nil)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	notifier, err := mqtt.NewPahoNotifier(mqtt.Config{Broker: broker, ClientID: "notifier", QoS: 1})
	if err != nil {
		t.Fatalf("notifier: %v", err)
	}
	defer func() { _ = notifier.Close() }()

	for _, a := range res.Calendar {
		if !a.Filled() {
			continue
		}
		if _, err := notifier.NotifyAssignment(a); err != nil {
			t.Fatalf("notify %s: %v", a.AssigneeID, err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		total := 0
		for _, msgs := range received {
			total += len(msgs)
		}
		mu.Unlock()
		if total == len(res.Calendar) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if got := len(received["rota/assignments/alice"]); got != 2 {
		t.Errorf("alice received %d notifications, want 2 (all: %v)", got, received)
	}
	if got := len(received["rota/assignments/bob"]); got != 1 {
		t.Errorf("bob received %d notifications, want 1 (all: %v)", got, received)
	}
}
