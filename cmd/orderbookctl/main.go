// Command orderbookctl is a small TCP client for orderbookd: it sends
// one command record (an order or a summary request) and prints the
// reply, or, in -loadtest mode, submits a stream of randomized orders
// and reports throughput.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"strconv"
	"time"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "orderbookd command protocol address")
	summary := flag.Bool("summary", false, "send a summary request instead of an order")
	id := flag.Uint64("id", 1, "order id")
	orderType := flag.String("type", "GTC", "order type: GTC, IOC, FOK")
	side := flag.String("side", "buy", "order side: buy, sell")
	price := flag.Int64("price", 100, "order price")
	quantity := flag.Uint64("quantity", 10, "order quantity")
	loadtest := flag.Bool("loadtest", false, "submit a stream of randomized orders instead of one command")
	orders := flag.Int("orders", 10000, "number of orders to submit in -loadtest mode")
	basePrice := flag.Int64("base-price", 10000, "mid price used for randomization in -loadtest mode")
	priceWidth := flag.Int64("price-width", 200, "price spread around the mid in -loadtest mode")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for -loadtest mode's random stream")
	flag.Parse()

	conn, err := net.DialTimeout("tcp", *addr, 5*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	if *loadtest {
		runLoadtest(conn, *orders, *basePrice, *priceWidth, *seed)
		return
	}

	var line string
	if *summary {
		line = `{"command":"summary"}`
	} else {
		line = fmt.Sprintf(`{"id":"%d","type":"%s","side":"%s","price":%d,"quantity":%d}`,
			*id, *orderType, *side, *price, *quantity)
	}

	reply, err := sendLine(conn, line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "send: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply)
}

func sendLine(conn net.Conn, line string) (string, error) {
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return "", err
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", err
	}
	return reply, nil
}

func runLoadtest(conn net.Conn, totalOrders int, basePrice, priceWidth, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	writer := bufio.NewWriter(conn)
	reader := bufio.NewReader(conn)

	start := time.Now()
	for i := 1; i <= totalOrders; i++ {
		side := "buy"
		price := basePrice + rng.Int63n(priceWidth)
		if rng.Intn(2) == 1 {
			side = "sell"
			price = basePrice - rng.Int63n(priceWidth)
		}
		quantity := rng.Int63n(5) + 1
		orderType := "GTC"
		if rng.Intn(5) == 0 {
			orderType = "IOC"
		}

		line := fmt.Sprintf(`{"id":"%s","type":"%s","side":"%s","price":%d,"quantity":%d}`,
			strconv.Itoa(i), orderType, side, price, quantity)
		if _, err := writer.WriteString(line + "\n"); err != nil {
			fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
			break
		}
		writer.Flush()
		if _, err := reader.ReadString('\n'); err != nil {
			fmt.Fprintf(os.Stderr, "read reply failed: %v\n", err)
			break
		}
	}
	elapsed := time.Since(start)

	ordersPerSec := float64(totalOrders) / elapsed.Seconds()
	fmt.Printf("submitted %d orders in %s (%.0f orders/s)\n", totalOrders, elapsed.Truncate(time.Millisecond), ordersPerSec)
}
