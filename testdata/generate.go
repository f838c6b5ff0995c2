package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type Student struct {
	ID    int64  `parquet:"id"`
	Name  string `parquet:"name"`
	Major string `parquet:"major"`
}

func main() {
	students := []Student{
		{ID: 1, Name: "Alice", Major: "CS"},
		{ID: 2, Name: "Bob", Major: "Math"},
		{ID: 3, Name: "Charlie", Major: "CS"},
	}

	file, err := os.Create("student.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Student](file)
	if _, err := writer.Write(students); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	csv := "id,name,major\n1,Alice,CS\n2,Bob,Math\n3,Charlie,CS\n"
	if err := os.WriteFile("student.csv", []byte(csv), 0o644); err != nil {
		log.Fatal(err)
	}

	log.Println("Generated student.parquet and student.csv with 3 students")
}
